package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version      string             `yaml:"version" json:"version"`
	Presentation PresentationConfig `yaml:"presentation" json:"presentation"`
	Output       OutputConfig       `yaml:"output" json:"output"`
	Logging      LoggingConfig      `yaml:"logging" json:"logging"`
	Export       ExportConfig       `yaml:"export" json:"export"`
}

// PresentationConfig configures the interactive presenter
type PresentationConfig struct {
	Deck       string        `yaml:"deck" json:"deck"`               // deck file, empty for the built-in deck
	StartSlide int           `yaml:"start_slide" json:"start_slide"` // 1-based
	Transition time.Duration `yaml:"transition" json:"transition"`   // slide transition length, 0 disables
	Watch      bool          `yaml:"watch" json:"watch"`             // reload the deck file on change
	Mouse      bool          `yaml:"mouse" json:"mouse"`             // clickable footer controls
	Theme      string        `yaml:"theme" json:"theme"`             // brand|high-contrast|minimal
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`
	MarkdownStyle string `yaml:"markdown_style" json:"markdown_style"` // auto|dark|light|notty
}

// LoggingConfig configures where log lines go while the TUI owns the terminal
type LoggingConfig struct {
	File string `yaml:"file" json:"file"`
}

// ExportConfig configures SVG handout export
type ExportConfig struct {
	Dir         string `yaml:"dir" json:"dir"`
	Width       int    `yaml:"width" json:"width"`
	Height      int    `yaml:"height" json:"height"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
}

// Valid option sets
var (
	ValidThemes         = []string{"brand", "high-contrast", "minimal"}
	ValidFormats        = []string{"text", "json", "markdown", "csv"}
	ValidColorModes     = []string{"auto", "always", "never"}
	ValidMarkdownStyles = []string{"auto", "dark", "light", "notty"}
)

// MaxTransition caps the slide transition length
const MaxTransition = 5 * time.Second

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Presentation: PresentationConfig{
			Deck:       "",
			StartSlide: 1,
			Transition: 500 * time.Millisecond,
			Watch:      false,
			Mouse:      true,
			Theme:      "brand",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			NoEmoji:       false,
			MarkdownStyle: "auto",
		},
		Logging: LoggingConfig{
			File: "",
		},
		Export: ExportConfig{
			Dir:         "./handouts",
			Width:       1280,
			Height:      720,
			Concurrency: 4,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validatePresentationConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateExportConfig(); err != nil {
		return err
	}
	return nil
}

// validatePresentationConfig validates presenter settings
func (c *Config) validatePresentationConfig() error {
	if c.Presentation.StartSlide < 1 {
		return fmt.Errorf("start_slide must be greater than 0")
	}
	if c.Presentation.Transition < 0 {
		return fmt.Errorf("transition must be non-negative")
	}
	if c.Presentation.Transition > MaxTransition {
		return fmt.Errorf("transition must be at most %v", MaxTransition)
	}
	if c.Presentation.Theme != "" && !contains(ValidThemes, c.Presentation.Theme) {
		return fmt.Errorf("invalid theme: %s (must be one of: brand, high-contrast, minimal)", c.Presentation.Theme)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" && !contains(ValidFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv)", c.Output.DefaultFormat)
	}
	if c.Output.ColorMode != "" && !contains(ValidColorModes, c.Output.ColorMode) {
		return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
	}
	if c.Output.MarkdownStyle != "" && !contains(ValidMarkdownStyles, c.Output.MarkdownStyle) {
		return fmt.Errorf("invalid markdown style: %s (must be one of: auto, dark, light, notty)", c.Output.MarkdownStyle)
	}
	return nil
}

// validateExportConfig validates handout export settings
func (c *Config) validateExportConfig() error {
	if c.Export.Width < 1 || c.Export.Height < 1 {
		return fmt.Errorf("export width and height must be greater than 0")
	}
	if c.Export.Concurrency < 1 {
		return fmt.Errorf("export concurrency must be greater than 0")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
