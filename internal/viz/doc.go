// Package viz renders experiments in the terminal: a braille pixel
// canvas with world-coordinate framing, lipgloss-styled panels and a
// bubbletea loop that animates any live Source.
package viz
