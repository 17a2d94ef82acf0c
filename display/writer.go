package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// WriterSink is a Sink over a plain stream. A stream has no viewport, so
// Resize only records the fitted height.
type WriterSink struct {
	w      io.Writer
	text   string
	height int
	err    error
}

// NewWriterSink creates a sink writing to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) SetText(text string) {
	s.text = text
	if _, err := io.WriteString(s.w, text); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *WriterSink) Measure() (int, int) {
	return lipgloss.Height(s.text), 0
}

func (s *WriterSink) Resize(height int) {
	s.height = height
}

// Height is the last fitted height
func (s *WriterSink) Height() int {
	return s.height
}

// Err returns the first write error, if any
func (s *WriterSink) Err() error {
	return s.err
}
