package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trknhr/namesake/internal/logger"
	"github.com/trknhr/namesake/internal/recommend"
	"github.com/trknhr/namesake/internal/store"
)

// BuildFunc fills the distance graph and returns an engine over it,
// reporting each installed row through onProgress.
type BuildFunc func(onProgress func(done, total int)) (*recommend.Engine, error)

type phase int

const (
	building phase = iota
	suggesting
	finished
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	nameStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 4).Border(lipgloss.RoundedBorder())
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type progressMsg float64

type builtMsg struct {
	engine *recommend.Engine
	err    error
}

type Session struct {
	names    []string
	history  recommend.History
	feedback store.FeedbackStore
	build    BuildFunc

	engine   *recommend.Engine
	phase    phase
	current  int
	liked    int
	disliked int

	events  chan tea.Msg
	bar     progress.Model
	percent float64
	message string
	err     error
}

func NewSession(names []string, history recommend.History, feedback store.FeedbackStore, build BuildFunc) *Session {
	if history == nil {
		history = recommend.History{}
	}
	s := &Session{
		names:    names,
		history:  history,
		feedback: feedback,
		build:    build,
		events:   make(chan tea.Msg, 16),
		bar:      progress.New(progress.WithDefaultGradient()),
	}
	for _, liked := range history {
		if liked {
			s.liked++
		} else {
			s.disliked++
		}
	}
	return s
}

func (s *Session) Init() tea.Cmd {
	return tea.Batch(s.startBuild(), waitForEvent(s.events))
}

// startBuild runs the build off the UI goroutine. Progress is forwarded at
// most once per percent to keep the message queue short.
func (s *Session) startBuild() tea.Cmd {
	events := s.events
	build := s.build
	return func() tea.Msg {
		go func() {
			last := -1
			engine, err := build(func(done, total int) {
				pct := done * 100 / max(1, total)
				if pct == last {
					return
				}
				last = pct
				select {
				case events <- progressMsg(float64(done) / float64(max(1, total))):
				default:
				}
			})
			events <- builtMsg{engine: engine, err: err}
		}()
		return nil
	}
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.bar.Width = max(10, msg.Width-4)

	case progressMsg:
		s.percent = float64(msg)
		return s, waitForEvent(s.events)

	case builtMsg:
		if msg.err != nil {
			s.fail(fmt.Errorf("failed to build graph: %w", msg.err))
			return s, tea.Quit
		}
		s.engine = msg.engine
		s.phase = suggesting
		s.percent = 1
		next, err := s.engine.Next(s.history)
		return s, s.show(next, err)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return s, tea.Quit
		}
		if s.phase != suggesting {
			return s, nil
		}
		switch msg.String() {
		case "y":
			if err := s.answer(true); err != nil {
				return s, tea.Quit
			}
			next, err := s.engine.Recommend(s.history)
			return s, s.show(next, err)
		case "n":
			if err := s.answer(false); err != nil {
				return s, tea.Quit
			}
			next, err := s.engine.Recommend(s.history)
			return s, s.show(next, err)
		case "c":
			rejected := s.current
			if err := s.answer(false); err != nil {
				return s, tea.Quit
			}
			next, err := s.engine.Closest(rejected, s.history)
			return s, s.show(next, err)
		}
	}
	return s, nil
}

func (s *Session) answer(liked bool) error {
	name := s.names[s.current]
	if err := s.feedback.Save(name, liked); err != nil {
		s.fail(fmt.Errorf("failed to save choice %q: %w", name, err))
		return err
	}
	s.history[s.current] = liked
	if liked {
		s.liked++
	} else {
		s.disliked++
	}
	logger.Debug("choice saved: %s liked=%v", name, liked)
	return nil
}

func (s *Session) show(next int, err error) tea.Cmd {
	if errors.Is(err, recommend.ErrExhausted) {
		s.phase = finished
		s.message = fmt.Sprintf("Every name has been rated (%d liked, %d disliked).", s.liked, s.disliked)
		return tea.Quit
	}
	if err != nil {
		s.fail(err)
		return tea.Quit
	}
	s.current = next
	return nil
}

func (s *Session) fail(err error) {
	logger.Error("%v", err)
	s.phase = finished
	s.err = err
}

func (s *Session) Err() error { return s.err }

// Current returns the name on screen, or "" outside the suggesting phase.
func (s *Session) Current() string {
	if s.phase != suggesting {
		return ""
	}
	return s.names[s.current]
}

func (s *Session) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("namesake") + "\n\n")

	switch s.phase {
	case building:
		fmt.Fprintf(&b, "Computing distances between %d names\n\n", len(s.names))
		b.WriteString(s.bar.ViewAs(s.percent) + "\n")
	case suggesting:
		b.WriteString(nameStyle.Render(s.names[s.current]) + "\n\n")
		fmt.Fprintf(&b, "%d liked, %d disliked, %d left\n\n", s.liked, s.disliked, len(s.names)-len(s.history))
		b.WriteString(helpStyle.Render("[y] like  [n] dislike  [c] similar, but not this one  [q] quit") + "\n")
	case finished:
		if s.err != nil {
			b.WriteString("Error: " + s.err.Error() + "\n")
		} else {
			b.WriteString(s.message + "\n")
		}
	}
	return b.String()
}
