package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# pitchdeck configuration
#
# Search order (first match wins per key):
#   ./.pitchdeck.yaml
#   ~/.config/pitchdeck/config.yaml
#   /etc/pitchdeck/config.yaml
# Environment variables prefixed with PITCHDECK_ override file values.

version: "1.0"

presentation:
  # Deck file to present. Leave empty for the built-in proposal deck.
  deck: ""
  # Slide to open on, counting from 1. Out-of-range values are clamped.
  start_slide: 1
  # Slide transition length. 0s disables the animation.
  transition: 500ms
  # Reload the deck when the file changes on disk.
  watch: false
  # Enable clicking the footer previous/next controls.
  mouse: true
  # brand | high-contrast | minimal
  theme: brand

output:
  # Format used by "pitchdeck slides": text | json | markdown | csv
  default_format: text
  # auto | always | never
  color_mode: auto
  verbose: false
  # Replace emoji icons with ASCII labels.
  no_emoji: false
  # Style for markdown slide bodies: auto | dark | light | notty
  markdown_style: auto

logging:
  # Log file used while the presenter owns the terminal. Empty discards logs.
  file: ""

export:
  # Directory for SVG handouts written by "pitchdeck export".
  dir: ./handouts
  width: 1280
  height: 720
  # Number of slides rendered in parallel.
  concurrency: 4
`
}

// MinimalSampleConfig returns a compact configuration with the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"
presentation:
  deck: ""
  transition: 500ms
  theme: brand
output:
  color_mode: auto
`
}
