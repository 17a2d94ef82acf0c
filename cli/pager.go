package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ka2n/yure/display"
)

// frameInterval is how long the pager waits for the new text to be drawn
// before measuring it.
const frameInterval = time.Second / 60

var (
	searchHighlight = lipgloss.NewStyle().
			Background(lipgloss.Color("228")). // yellow
			Foreground(lipgloss.Color("0"))    // black

	currentMatchHighlight = lipgloss.NewStyle().
				Background(lipgloss.Color("196")). // red
				Foreground(lipgloss.Color("15"))   // white

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(2)
)

// reportMsg carries the rendered report once the fetch completes
type reportMsg struct {
	text string
}

// fitMsg fires one frame after new text was set
type fitMsg struct{}

type searchState struct {
	active       bool
	input        textinput.Model
	matches      []int // byte offsets into content
	currentMatch int
}

// pagerModel is a scrollable report view. It implements display.Sink.
type pagerModel struct {
	viewport viewport.Model
	content  string
	height   int // fitted content height in lines
	loaded   bool
	ready    bool
	load     func() string
	search   searchState
}

var _ display.Sink = (*pagerModel)(nil)

// NewPager creates a pager that runs load in the background and shows its result
func NewPager(load func() string) *pagerModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return &pagerModel{
		load: load,
		search: searchState{
			input: ti,
		},
	}
}

// SetText replaces the report and clears any search
func (m *pagerModel) SetText(text string) {
	m.content = text
	m.height = 0
	m.search.matches = nil
	m.search.currentMatch = 0
	m.show(text)
}

// Measure returns the text height and the viewport height in lines
func (m *pagerModel) Measure() (int, int) {
	return lipgloss.Height(m.content), m.viewport.Height
}

// Resize pads the viewport content to height lines
func (m *pagerModel) Resize(height int) {
	m.height = height
	m.show(m.content)
	if len(m.search.matches) > 0 {
		m.highlightMatches()
	}
}

// show puts s into the viewport, padded to the fitted height
func (m *pagerModel) show(s string) {
	if pad := m.height - lipgloss.Height(s); pad > 0 {
		s += strings.Repeat("\n", pad)
	}
	m.viewport.SetContent(s)
}

func fitAfterFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return fitMsg{}
	})
}

// Init starts the fetch
func (m *pagerModel) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		return reportMsg{text: load()}
	}
}

// Update handles user input and updates the model state
func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		m.loaded = true
		m.content = msg.text
		if !m.ready {
			return m, nil
		}
		display.Render(m, msg.text)
		return m, fitAfterFrame()

	case fitMsg:
		if m.ready && m.loaded {
			display.Fit(m)
		}
		return m, nil

	case tea.KeyMsg:
		if m.search.active {
			return m, m.updateSearchInput(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.viewport.Style = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				PaddingLeft(2).
				PaddingRight(2)
			m.ready = true
			if !m.loaded {
				m.viewport.SetContent("Fetching earthquake data...")
				return m, nil
			}
			display.Render(m, m.content)
			return m, fitAfterFrame()
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		if m.loaded {
			// viewport height changed; measure again
			return m, fitAfterFrame()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) updateSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape:
		m.search.active = false
		m.search.input.Reset()
		m.clearHighlights()
	case tea.KeyEnter:
		if m.search.input.Value() != "" {
			m.performSearch()
			m.search.active = false
		}
	default:
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		return cmd
	}
	return nil
}

// handleKey processes navigation keys; handled is false for keys the
// viewport should see
func (m *pagerModel) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit, true
	case "esc":
		if len(m.search.matches) > 0 {
			m.clearHighlights()
			m.search.input.Reset()
		}
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "f", "pgdown", " ":
		m.viewport.ScrollDown(m.viewport.Height)
	case "b", "pgup":
		m.viewport.ScrollUp(m.viewport.Height)
	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()
	case "/":
		if !m.loaded {
			return nil, true
		}
		m.search.active = true
		m.search.input.Focus()
		return textinput.Blink, true
	case "n":
		m.nextMatch()
	case "N":
		m.previousMatch()
	default:
		return nil, false
	}
	return nil, true
}

// View renders the current state of the model
func (m *pagerModel) View() string {
	if !m.ready {
		return "\nInitializing..."
	}

	var help string
	if m.search.active {
		help = m.search.input.View()
	} else {
		baseHelp := "↑/k up • ↓/j down • space/f forward • b back • g/home top • G/end bottom"
		searchHelp := "/ search • n next • N previous • q quit"
		if len(m.search.matches) > 0 {
			searchHelp = fmt.Sprintf("/ search (%d/%d) • n next • N previous • q quit",
				m.search.currentMatch+1, len(m.search.matches))
		}
		help = helpStyle.Render(fmt.Sprintf("%3.f%% • %s • %s",
			m.viewport.ScrollPercent()*100, baseHelp, searchHelp))
	}
	return m.viewport.View() + "\n" + help
}

// performSearch finds every occurrence of the query. Queries without upper
// case letters match case-insensitively.
func (m *pagerModel) performSearch() {
	m.search.matches = nil
	m.search.currentMatch = 0

	query := m.search.input.Value()
	if query == "" {
		return
	}
	content := m.content
	if !strings.ContainsAny(query, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		content = strings.ToLower(content)
	}

	for offset := 0; offset < len(content); {
		i := strings.Index(content[offset:], query)
		if i == -1 {
			break
		}
		m.search.matches = append(m.search.matches, offset+i)
		offset += i + len(query)
	}

	if len(m.search.matches) == 0 {
		return
	}

	// Prefer the first match already on screen
	for i := range m.search.matches {
		if m.isMatchInViewport(i) {
			m.search.currentMatch = i
			break
		}
	}
	m.highlightMatches()
	m.scrollToMatch(m.search.currentMatch)
}

func (m *pagerModel) lineOf(match int) int {
	return strings.Count(m.content[:m.search.matches[match]], "\n")
}

func (m *pagerModel) highlightMatches() {
	if len(m.search.matches) == 0 {
		return
	}

	n := len(m.search.input.Value())
	var b strings.Builder
	last := 0
	for i, pos := range m.search.matches {
		b.WriteString(m.content[last:pos])
		style := searchHighlight
		if i == m.search.currentMatch {
			style = currentMatchHighlight
		}
		b.WriteString(style.Render(m.content[pos : pos+n]))
		last = pos + n
	}
	b.WriteString(m.content[last:])

	m.show(b.String())
}

// isMatchInViewport checks if the given match index is currently visible in the viewport
func (m *pagerModel) isMatchInViewport(match int) bool {
	if match < 0 || match >= len(m.search.matches) {
		return false
	}
	line := m.lineOf(match)
	return line >= m.viewport.YOffset && line < m.viewport.YOffset+m.viewport.Height
}

func (m *pagerModel) nextMatch() {
	if len(m.search.matches) == 0 {
		return
	}
	next := (m.search.currentMatch + 1) % len(m.search.matches)
	if !m.isMatchInViewport(m.search.currentMatch) {
		// Jump to the first match at or below the top of the viewport
		next = 0
		for i := range m.search.matches {
			if m.lineOf(i) >= m.viewport.YOffset {
				next = i
				break
			}
		}
	}
	m.search.currentMatch = next
	m.highlightMatches()
	m.scrollToMatch(next)
}

func (m *pagerModel) previousMatch() {
	if len(m.search.matches) == 0 {
		return
	}
	prev := m.search.currentMatch - 1
	if prev < 0 {
		prev = len(m.search.matches) - 1
	}
	if !m.isMatchInViewport(m.search.currentMatch) {
		// Jump to the last match at or above the top of the viewport
		prev = len(m.search.matches) - 1
		for i := len(m.search.matches) - 1; i >= 0; i-- {
			if m.lineOf(i) <= m.viewport.YOffset {
				prev = i
				break
			}
		}
	}
	m.search.currentMatch = prev
	m.highlightMatches()
	m.scrollToMatch(prev)
}

func (m *pagerModel) scrollToMatch(match int) {
	if match < 0 || match >= len(m.search.matches) {
		return
	}
	line := m.lineOf(match)
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// clearHighlights removes all search highlights and resets search state
func (m *pagerModel) clearHighlights() {
	m.search.matches = nil
	m.search.currentMatch = 0
	m.show(m.content)
}

// RunPager starts the pager program; load runs once in the background
func RunPager(load func() string) error {
	p := tea.NewProgram(
		NewPager(load),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
