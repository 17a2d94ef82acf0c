// Package display writes reports into a scrollable text sink.
//
// Rendering is two-phase. Render applies the text; once the host has laid
// the text out (the next frame of a terminal UI, or immediately for a plain
// writer) it calls Fit, which measures the text and resizes the content
// container so that it is always scrollable.
package display

import (
	"github.com/ka2n/yure/log"
)

// ScrollBuffer is how much taller than the viewport the content container is
// kept, in the sink's length unit (lines for terminal sinks).
const ScrollBuffer = 10

// Sink is a text widget inside a scrollable container
type Sink interface {
	// SetText replaces the displayed text
	SetText(text string)
	// Measure returns the laid-out text height and the visible viewport height
	Measure() (textHeight, viewportHeight int)
	// Resize sets the height of the content container
	Resize(height int)
}

// ContentHeight is the container height for the given measurements
func ContentHeight(textHeight, viewportHeight int) int {
	return max(textHeight, viewportHeight+ScrollBuffer)
}

// Render applies text to the sink. Call Fit after layout completes.
func Render(s Sink, text string) {
	s.SetText(text)
}

// Fit measures the sink and resizes its container, returning the new height
func Fit(s Sink) int {
	textHeight, viewportHeight := s.Measure()
	final := ContentHeight(textHeight, viewportHeight)
	s.Resize(final)

	log.Debug("content resized",
		"text", textHeight,
		"viewport", viewportHeight,
		"final", final,
	)
	return final
}
