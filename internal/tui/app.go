package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/splashgate/internal/database/repository"
	"github.com/jask/splashgate/internal/readiness"
	"github.com/jask/splashgate/internal/surface"
)

// Gate is the part of the startup gate the UI talks to.
type Gate interface {
	ReportName(name string) error
	Snapshot() readiness.State
	Done() <-chan struct{}
	Err() error
}

// Greeter is the main surface's feature.
type Greeter interface {
	Greet(ctx context.Context, name string) (repository.Greeting, error)
	Recent(ctx context.Context, limit int) ([]repository.Greeting, error)
}

// Surfaces reports which surfaces the host currently shows.
type Surfaces interface {
	Visible(name string) bool
}

// Options tunes the UI.
type Options struct {
	Names         readiness.Surfaces
	FrontendDelay time.Duration
	RecentLimit   int
	Log           zerolog.Logger
}

// App renders whichever surface is visible: the loading splash until the gate
// fires, then the greeter.
type App struct {
	ctx      context.Context
	gate     Gate
	greeter  Greeter
	surfaces Surfaces
	opts     Options

	spinner          spinner.Model
	input            textinput.Model
	recent           []repository.Greeting
	status           string
	frontendReported bool
	transitionErr    error
}

func New(ctx context.Context, gate Gate, greeter Greeter, surfaces Surfaces, opts Options) *App {
	if opts.Names == (readiness.Surfaces{}) {
		opts.Names = readiness.DefaultSurfaces()
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
	in := textinput.New()
	in.Placeholder = "your name"
	in.Prompt = "name> "
	in.CharLimit = 64
	return &App{
		ctx:      ctx,
		gate:     gate,
		greeter:  greeter,
		surfaces: surfaces,
		opts:     opts,
		spinner:  sp,
		input:    in,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.frontendInit(), a.awaitTransition())
}

// frontendInit stands in for the UI's own setup and signals when it is done.
func (a *App) frontendInit() tea.Cmd {
	if a.opts.FrontendDelay <= 0 {
		return func() tea.Msg { return frontendReadyMsg{} }
	}
	return tea.Tick(a.opts.FrontendDelay, func(time.Time) tea.Msg { return frontendReadyMsg{} })
}

func (a *App) awaitTransition() tea.Cmd {
	return func() tea.Msg {
		<-a.gate.Done()
		return transitionDoneMsg{err: a.gate.Err()}
	}
}

func (a *App) loadRecent() tea.Cmd {
	return func() tea.Msg {
		list, err := a.greeter.Recent(a.ctx, a.opts.RecentLimit)
		if err != nil {
			return errMsg{err}
		}
		return recentMsg(list)
	}
}

func (a *App) greetCmd(name string) tea.Cmd {
	return func() tea.Msg {
		g, err := a.greeter.Greet(a.ctx, name)
		return greetedMsg{greeting: g, err: err}
	}
}

func (a *App) mainVisible() bool {
	return a.surfaces.Visible(a.opts.Names.Main)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var focusCmd tea.Cmd
	if a.mainVisible() && !a.input.Focused() {
		focusCmd = a.input.Focus()
	}
	model, cmd := a.update(msg)
	return model, tea.Batch(focusCmd, cmd)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		if w := m.Width - len(a.input.Prompt) - 4; w > 0 {
			a.input.Width = w
		}
	case tea.KeyMsg:
		return a.handleKey(m)
	case frontendReadyMsg:
		if a.frontendReported {
			return a, nil
		}
		a.frontendReported = true
		if err := a.gate.ReportName(readiness.Frontend.String()); err != nil {
			a.opts.Log.Error().Err(err).Msg("frontend report failed")
			a.status = "error: " + err.Error()
		}
	case spinner.TickMsg:
		if a.mainVisible() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case transitionDoneMsg:
		if m.err != nil {
			a.transitionErr = m.err
			return a, nil
		}
		return a, a.loadRecent()
	case SurfaceChangedMsg:
		if m.Surface == a.opts.Names.Main && m.Visible {
			return a, a.loadRecent()
		}
	case greetedMsg:
		if m.err != nil && m.greeting.Message == "" {
			a.status = "error: " + m.err.Error()
			return a, nil
		}
		a.status = m.greeting.Message
		if m.err != nil {
			a.status += " (not saved: " + m.err.Error() + ")"
		}
		a.input.Reset()
		return a, a.loadRecent()
	case recentMsg:
		a.recent = []repository.Greeting(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.mainVisible() {
		if m.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}
	switch m.String() {
	case "enter":
		name := strings.TrimSpace(a.input.Value())
		if name == "" {
			a.status = "type a name first"
			return a, nil
		}
		return a, a.greetCmd(name)
	case "esc":
		if a.input.Value() == "" {
			return a, tea.Quit
		}
		a.input.Reset()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) View() string {
	switch {
	case a.mainVisible():
		return a.renderMain()
	case a.surfaces.Visible(a.opts.Names.Loading):
		return a.renderLoading()
	default:
		return a.renderDegraded()
	}
}

// messages
type frontendReadyMsg struct{}

type transitionDoneMsg struct{ err error }

// SurfaceChangedMsg is sent by the host when a surface is shown or hidden.
type SurfaceChangedMsg surface.Change

type greetedMsg struct {
	greeting repository.Greeting
	err      error
}

type recentMsg []repository.Greeting

type errMsg struct{ error }

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (a *App) renderLoading() string {
	state := a.gate.Snapshot()
	out := titleStyle.Render("splashgate") + "\n\n"
	out += fmt.Sprintf("%s Starting up...\n\n", a.spinner.View())
	out += taskLine(readiness.Frontend, state.FrontendDone) + "\n"
	out += taskLine(readiness.Backend, state.BackendDone) + "\n"
	if a.transitionErr != nil {
		out += "\n" + errStyle.Render("startup failed: "+a.transitionErr.Error())
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	out += "\n" + dimStyle.Render("[q] Quit")
	return boxStyle.Render(out)
}

func taskLine(t readiness.Task, done bool) string {
	if done {
		return okStyle.Render("[x] ") + t.String()
	}
	return dimStyle.Render("[ ] ") + t.String()
}

func (a *App) renderMain() string {
	out := titleStyle.Render("Greeter") + "\n\n"
	out += a.input.View() + "\n"
	if a.status != "" {
		out += "\n" + a.status + "\n"
	}
	if len(a.recent) > 0 {
		out += "\n" + dimStyle.Render("Recent greetings") + "\n"
		for _, g := range a.recent {
			out += fmt.Sprintf("- %-16s %s\n", g.Name, dimStyle.Render(g.CreatedAt.Local().Format("2006-01-02 15:04")))
		}
	}
	out += "\n" + dimStyle.Render("[enter] Greet  [esc] Clear/Quit  [ctrl+c] Quit")
	return out
}

func (a *App) renderDegraded() string {
	msg := "no surface to show"
	if a.transitionErr != nil {
		msg = "startup failed: " + a.transitionErr.Error()
	}
	return errStyle.Render(msg) + "\n" + dimStyle.Render("[ctrl+c] Quit")
}
