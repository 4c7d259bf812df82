package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# SciCalc configuration
#
# Search order (highest priority first):
#   ./.scicalc.yaml
#   ~/.config/scicalc/config.yaml
#   /etc/scicalc/config.yaml
# Every setting can also be overridden with a SCICALC_ environment variable,
# e.g. SCICALC_UI_THEME=light or SCICALC_DISPLAY_PRECISION=10.

version: "1.0"

display:
  # Significant digits kept when a result replaces the buffer.
  # -1 keeps the shortest form that reads back to the same value,
  # otherwise 1-17 digits.
  precision: -1

ui:
  # Starting palette: dark or light. ctrl+t switches while running.
  theme: dark
  # auto follows the terminal and NO_COLOR; always or never force it.
  color_mode: auto
  # Number of history lines visible above the display.
  history_height: 6
  # Activate keypad buttons with the mouse.
  mouse: true
  # Use emoji in CLI output; plain-text markers otherwise.
  emoji: true

output:
  # Transcript format for "scicalc eval": text, json, markdown or csv.
  default_format: text

logging:
  # Debug and info messages are only written when verbose is on.
  verbose: false
  # The terminal UI writes its log here. Empty discards it.
  file: ""
`
}

// MinimalSampleConfig returns a configuration with only the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"
display:
  precision: -1
ui:
  theme: dark
output:
  default_format: text
`
}
