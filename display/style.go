package display

import (
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/morikuni/failure/v2"
	"golang.org/x/net/html"
)

// ErrorCode defines error types for display operations
type ErrorCode string

const (
	ErrUnknownStyle ErrorCode = "UnknownStyle"
	ErrRender       ErrorCode = "RenderError"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// Style selects how rich-text markup is presented
type Style string

const (
	// StyleRaw keeps the <b> markup for sinks that understand rich text
	StyleRaw Style = "raw"
	// StylePlain strips the markup
	StylePlain Style = "plain"
	// StyleANSI renders bold runs with terminal escape sequences
	StyleANSI Style = "ansi"
	// StyleGlamour converts the markup to Markdown and renders it with glamour
	StyleGlamour Style = "glamour"
)

// Styles lists every supported style
func Styles() []Style {
	return []Style{StyleRaw, StylePlain, StyleANSI, StyleGlamour}
}

// ParseStyle validates a style name
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", failure.New(ErrUnknownStyle,
		failure.Message("Unknown display style"),
		failure.Context{"style": s},
	)
}

var boldStyle = lipgloss.NewStyle().Bold(true)

// Stylizer converts rich-text reports for a given Style
type Stylizer struct {
	// WordWrap is the glamour wrap width
	WordWrap int
	// GlamourStyle is a glamour standard style name; empty selects automatically
	GlamourStyle string
}

// Apply renders text in the given style
func (s Stylizer) Apply(text string, style Style) (string, error) {
	switch style {
	case StyleRaw:
		return text, nil
	case StylePlain:
		return renderSegments(text, func(seg segment) string { return seg.text }), nil
	case StyleANSI:
		return renderSegments(text, func(seg segment) string {
			if seg.bold {
				return boldStyle.Render(seg.text)
			}
			return seg.text
		}), nil
	case StyleGlamour:
		return s.glamour(text)
	default:
		return "", failure.New(ErrUnknownStyle,
			failure.Message("Unknown display style"),
			failure.Context{"style": string(style)},
		)
	}
}

func (s Stylizer) glamour(text string) (string, error) {
	md, err := ToMarkdown(text)
	if err != nil {
		return "", err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(s.WordWrap)}
	if s.GlamourStyle != "" {
		opts = append(opts, glamour.WithStandardStyle(s.GlamourStyle))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", failure.New(ErrRender,
			failure.Message("Failed to create markdown renderer"),
			failure.Context{"cause": err.Error()},
		)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", failure.New(ErrRender,
			failure.Message("Failed to render markdown"),
			failure.Context{"cause": err.Error()},
		)
	}
	return out, nil
}

// ToMarkdown converts rich-text markup to Markdown. Lines are converted one
// at a time since HTML collapses newlines; non-empty lines are joined with
// hard breaks and empty lines become paragraph breaks.
func ToMarkdown(text string) (string, error) {
	converter := html2md.NewConverter("", true, &html2md.Options{})

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		md, err := converter.ConvertString(line)
		if err != nil {
			return "", failure.New(ErrRender,
				failure.Message("Failed to convert report markup"),
				failure.Context{"line": line, "cause": err.Error()},
			)
		}
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			md += "  "
		}
		out = append(out, md)
	}
	return strings.Join(out, "\n") + "\n", nil
}

type segment struct {
	text string
	bold bool
}

func renderSegments(text string, render func(segment) string) string {
	var b strings.Builder
	for _, seg := range parseMarkup(text) {
		b.WriteString(render(seg))
	}
	return b.String()
}

// parseMarkup splits rich text into runs. Only <b> and <strong> are
// recognized; other tags are dropped and their text kept.
func parseMarkup(text string) []segment {
	var (
		segs  []segment
		depth int
	)
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF; a strings.Reader has no other read errors
			return segs
		case html.TextToken:
			segs = append(segs, segment{text: string(z.Text()), bold: depth > 0})
		case html.StartTagToken:
			if isBold(z) {
				depth++
			}
		case html.EndTagToken:
			if isBold(z) && depth > 0 {
				depth--
			}
		}
	}
}

func isBold(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "b", "strong":
		return true
	default:
		return false
	}
}
