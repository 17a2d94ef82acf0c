package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func readyPager(t *testing.T, height int) *pagerModel {
	t.Helper()
	m := NewPager(nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: height})
	if !m.ready {
		t.Fatal("pager not ready after window size message")
	}
	return m
}

func TestPagerShowsFetchingBeforeReport(t *testing.T) {
	m := readyPager(t, 24)

	if got := m.View(); !strings.Contains(got, "Fetching earthquake data...") {
		t.Errorf("View() = %q, want fetching message", got)
	}
}

func TestPagerInitLoadsReport(t *testing.T) {
	m := NewPager(func() string { return "report text" })

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil command")
	}
	msg, ok := cmd().(reportMsg)
	if !ok {
		t.Fatalf("Init() command produced %T, want reportMsg", msg)
	}
	if msg.text != "report text" {
		t.Errorf("reportMsg.text = %q, want %q", msg.text, "report text")
	}
}

func TestPagerFitsAfterFrame(t *testing.T) {
	tests := []struct {
		name       string
		lines      int
		wantHeight int
	}{
		{name: "short report gets scroll buffer", lines: 3, wantHeight: 22 + 10},
		{name: "long report keeps its height", lines: 50, wantHeight: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := readyPager(t, 24) // viewport is 22 lines
			text := strings.TrimSuffix(strings.Repeat("line\n", tt.lines), "\n")

			_, cmd := m.Update(reportMsg{text: text})
			if cmd == nil {
				t.Fatal("report message did not schedule a fit")
			}
			if m.height != 0 {
				t.Errorf("height before fit = %d, want 0", m.height)
			}

			msg := cmd()
			if _, ok := msg.(fitMsg); !ok {
				t.Fatalf("scheduled command produced %T, want fitMsg", msg)
			}
			m.Update(msg)

			if m.height != tt.wantHeight {
				t.Errorf("height = %d, want %d", m.height, tt.wantHeight)
			}
			if got := m.viewport.TotalLineCount(); got != tt.wantHeight {
				t.Errorf("viewport lines = %d, want %d", got, tt.wantHeight)
			}
		})
	}
}

func TestPagerReportBeforeWindowSize(t *testing.T) {
	m := NewPager(nil)

	_, cmd := m.Update(reportMsg{text: "a\nb"})
	if cmd != nil {
		t.Error("fit scheduled before the viewport exists")
	}

	_, cmd = m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	if cmd == nil {
		t.Fatal("window size did not schedule a fit for the loaded report")
	}
	m.Update(cmd())

	if m.height != 20 {
		t.Errorf("height = %d, want 20", m.height)
	}
}

func TestPagerMeasure(t *testing.T) {
	m := readyPager(t, 24)
	m.SetText("a\nb\nc")

	text, viewport := m.Measure()
	if diff := cmp.Diff([2]int{3, 22}, [2]int{text, viewport}); diff != "" {
		t.Errorf("Measure() mismatch (-want +got):\n%s", diff)
	}
}

func TestPagerSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "lower case ignores case", query: "alpha", want: []int{0, 11, 17}},
		{name: "upper case is exact", query: "Alpha", want: []int{17}},
		{name: "no match", query: "gamma", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := readyPager(t, 24)
			m.loaded = true
			m.SetText("alpha\nbeta\nalpha\nAlpha")

			m.search.input.SetValue(tt.query)
			m.performSearch()

			if diff := cmp.Diff(tt.want, m.search.matches); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPagerMatchNavigation(t *testing.T) {
	m := readyPager(t, 24)
	m.loaded = true
	m.SetText("alpha\nbeta\nalpha")
	m.search.input.SetValue("alpha")
	m.performSearch()

	steps := []struct {
		move func()
		want int
	}{
		{m.nextMatch, 1},
		{m.nextMatch, 0},
		{m.previousMatch, 1},
		{m.previousMatch, 0},
	}
	for i, s := range steps {
		s.move()
		if m.search.currentMatch != s.want {
			t.Errorf("step %d: currentMatch = %d, want %d", i, m.search.currentMatch, s.want)
		}
	}

	m.clearHighlights()
	if len(m.search.matches) != 0 {
		t.Errorf("matches after clear = %v, want none", m.search.matches)
	}
}

func TestPagerQuit(t *testing.T) {
	m := readyPager(t, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q did not return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
