// Package display renders live progress for a removal run.
//
// It is strictly a consumer of the core's progress accounting: it polls the
// counters and drains the best-effort activity channels on a fixed tick,
// and nothing it does can block or slow a worker. The terminal UI is a
// bubbletea program; when stdout is not a terminal (or the user asked for
// plain output) a zerolog-based fallback logs the same information.
package display

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/colorhash"

	"github.com/reapfs/reap/internal/remove"
)

const tickInterval = 100 * time.Millisecond

const (
	standardLines = 10
	detailedLines = 50
	minLines      = 5
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type tickMsg time.Time

type doneMsg struct {
	res remove.Result
	err error
}

// Model is the live-progress bubbletea model. It samples the shared
// Progress on every tick and quits once the run result arrives.
type Model struct {
	prog      *remove.Progress
	spinner   spinner.Model
	dryRun    bool
	verbosity remove.Verbosity

	recent  []string
	lastErr *remove.ErrorEntry
	stats   remove.Stats
	height  int

	cancel context.CancelFunc
	res    remove.Result
	err    error
}

// NewModel creates a display model reading from prog.
func NewModel(prog *remove.Progress, dryRun bool, verbosity remove.Verbosity) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	return Model{
		prog:      prog,
		spinner:   sp,
		dryRun:    dryRun,
		verbosity: verbosity,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		m.sample()
		return m, tick()
	case doneMsg:
		m.sample()
		m.res = msg.res
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// Cancel the run and keep displaying until it reports in,
			// so the final counters reflect the abort.
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
	}
	return m, nil
}

// sample pulls a counter snapshot and folds freshly drained activity into
// the rolling window.
func (m *Model) sample() {
	m.stats = m.prog.Stats()
	keep := m.lineBudget()
	if keep > 0 {
		m.recent = append(m.recent, m.prog.DrainRecent()...)
		if len(m.recent) > keep {
			m.recent = m.recent[len(m.recent)-keep:]
		}
	}
	if errs := m.prog.DrainErrors(); len(errs) > 0 {
		last := errs[len(errs)-1]
		m.lastErr = &last
	}
}

// lineBudget returns how many recent-path lines this verbosity shows.
func (m *Model) lineBudget() int {
	switch m.verbosity {
	case remove.VerbosityStandard:
		return standardLines
	case remove.VerbosityDetailed:
		n := m.height - 5
		if n > detailedLines {
			n = detailedLines
		}
		if n < minLines {
			n = minLines
		}
		return n
	default:
		return 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	label := "Deleted"
	count := m.stats.Deleted
	if m.dryRun {
		label = "[Dry Run] Scanned"
		count = m.stats.Scanned
	}
	header := fmt.Sprintf("%s: %d | %d errors | %.1f items/s",
		label, count, m.stats.Errors, m.stats.Rate)
	b.WriteString(m.spinner.View() + " " + headerStyle.Render(header) + "\n")

	for _, path := range m.recent {
		b.WriteString("  " + pathStyle(path).Render(path) + "\n")
	}

	if m.lastErr != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Last error: %s - %s", m.lastErr.Path, m.lastErr.Msg)) + "\n")
	}

	if depth := m.stats.Scanned - m.stats.Deleted - m.stats.Errors; depth > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d queued", depth)) + "\n")
	}

	return b.String()
}

// pathStyle tints a path deterministically by its hash so the scroll is
// easier to scan visually.
func pathStyle(path string) lipgloss.Style {
	// 256-color cube range, avoiding the dark and grayscale ends.
	c := colorhash.HashString(path)%215 + 16
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("%d", c)))
}

// Run drives a removal under the live terminal display. The remover runs
// in the background; its result is forwarded into the program, which quits
// once it arrives.
func Run(ctx context.Context, r *remove.Remover, paths []string, cfg remove.Config) (remove.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(r.Progress(), cfg.DryRun, cfg.Verbosity)
	m.cancel = cancel
	p := tea.NewProgram(m)

	go func() {
		res, err := r.Run(runCtx, paths)
		p.Send(doneMsg{res: res, err: err})
	}()

	final, teaErr := p.Run()
	if fm, ok := final.(Model); ok {
		if teaErr != nil && fm.err == nil {
			fm.err = teaErr
		}
		return fm.res, fm.err
	}
	return remove.Result{}, teaErr
}
