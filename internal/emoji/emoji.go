package emoji

import "sync/atomic"

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":    {"❌", "[ERR]"},
	"warning":  {"⚠️", "[WRN]"},
	"info":     {"ℹ️", "[INF]"},
	"success":  {"✅", "[OK]"},
	"rocket":   {"🚀", "[>>]"},
	"help":     {"❓", "[?]"},
	"door":     {"🚪", "[EXIT]"},
	"folder":   {"📁", "[DIR]"},
	"document": {"📄", "[DOC]"},
	"target":   {"🎯", "[>]"},
	"bulb":     {"💡", "[TIP]"},
	"stats":    {"📊", "[STATS]"},

	// Slide content icons
	"database": {"🗄️", "[DB]"},
	"users":    {"👥", "[PPL]"},
	"user":     {"👤", "[USR]"},
	"brain":    {"🧠", "[AI]"},
	"globe":    {"🌐", "[WEB]"},
	"chat":     {"💬", "[CHAT]"},
	"zap":      {"⚡", "[!]"},
	"lock":     {"🔒", "[SEC]"},
	"pin":      {"📍", "[ADDR]"},
	"mail":     {"✉️", "[MAIL]"},
	"phone":    {"📞", "[TEL]"},
	"link":     {"🔗", "[URL]"},
	"cart":     {"🛒", "[POS]"},
	"camera":   {"📷", "[CAM]"},
	"wifi":     {"📶", "[WIFI]"},
	"star":     {"⭐", "[*]"},
	"clock":    {"🕒", "[T]"},
	"share":    {"🔀", "[CH]"},
	"robot":    {"🤖", "[BOT]"},
	"search":   {"🔍", "[Q]"},
	"edit":     {"✏️", "[ED]"},
	"chart":    {"📈", "[AN]"},
	"check":    {"✔️", "[v]"},
	"arrow":    {"→", "->"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// Icon is GetEmoji for optional slide icons: an empty key renders nothing
func Icon(key string) string {
	if key == "" {
		return ""
	}
	return GetEmoji(key)
}

// Has reports whether key is a known icon
func Has(key string) bool {
	_, ok := emojiMap[key]
	return ok
}
