// Package explorer implements the interactive query explorer mode.
// It drives the application service from a single input line and renders
// lookup, lookup-all, and subscription results, reloading live when the
// registry document changes on disk.
package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	appadapter "github.com/zjrosen/lattice/internal/application/adapter"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/pubsub"
)

// queryMode selects which registry operation the input line drives.
type queryMode int

const (
	modeLookup queryMode = iota
	modeLookupAll
	modeSubscriptions
)

func (m queryMode) String() string {
	switch m {
	case modeLookup:
		return "lookup"
	case modeLookupAll:
		return "lookup-all"
	case modeSubscriptions:
		return "subscriptions"
	default:
		return "unknown"
	}
}

// Model is the Bubble Tea model for the explorer.
type Model struct {
	svc      *appadapter.Service
	input    textinput.Model
	mode     queryMode
	results  string
	errText  string
	width    int
	height   int
	styles   Styles
	listener *pubsub.ContinuousListener[appadapter.ReloadInfo]
	ctx      context.Context
}

// New creates an explorer bound to a loaded service.
func New(ctx context.Context, svc *appadapter.Service, styles Styles) Model {
	input := textinput.New()
	input.Placeholder = "IArticle -> IView [name]"
	input.Prompt = "query> "
	input.Focus()

	return Model{
		svc:      svc,
		input:    input,
		styles:   styles,
		listener: pubsub.NewContinuousListener(ctx, svc.Events()),
		ctx:      ctx,
	}
}

// Init starts the reload listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listener.Listen())
}

// Update handles key input and reload events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pubsub.Event[appadapter.ReloadInfo]:
		m.results = fmt.Sprintf("registry reloaded (generation %d)", msg.Payload.Generation)
		m.errText = ""
		log.Debug(log.CatUI, "explorer saw reload", "generation", msg.Payload.Generation)
		return m, m.listener.Listen()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.mode = (m.mode + 1) % 3
			return m, nil
		case tea.KeyEnter:
			m.runQuery()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runQuery parses the input line and executes the current mode's operation.
// Syntax: "<required,...> -> <provided> [name]".
func (m *Model) runQuery() {
	required, provided, name, err := parseQuery(m.input.Value())
	if err != nil {
		m.errText = err.Error()
		m.results = ""
		return
	}

	m.errText = ""
	switch m.mode {
	case modeLookup:
		value, err := m.svc.Lookup(m.ctx, appadapter.Query{Required: required, Provided: provided, Name: name})
		if err != nil {
			m.errText = err.Error()
			return
		}
		m.results = appadapter.ValueString(value)

	case modeLookupAll:
		all, err := m.svc.LookupAll(m.ctx, required, provided)
		if err != nil {
			m.errText = err.Error()
			return
		}
		if len(all) == 0 {
			m.results = "<none>"
			return
		}
		var b strings.Builder
		for _, nv := range all {
			label := nv.Name
			if label == "" {
				label = `""`
			}
			fmt.Fprintf(&b, "%s: %s\n", label, appadapter.ValueString(nv.Value))
		}
		m.results = strings.TrimRight(b.String(), "\n")

	case modeSubscriptions:
		subs, err := m.svc.Subscriptions(m.ctx, required, provided)
		if err != nil {
			m.errText = err.Error()
			return
		}
		if len(subs) == 0 {
			m.results = "<none>"
			return
		}
		parts := make([]string, len(subs))
		for i, v := range subs {
			parts[i] = appadapter.ValueString(v)
		}
		m.results = strings.Join(parts, "\n")
	}
}

// parseQuery splits "<required,...> -> <provided> [name]".
func parseQuery(line string) (required []string, provided, name string, err error) {
	left, right, found := strings.Cut(line, "->")
	if !found {
		return nil, "", "", fmt.Errorf(`query must look like "IArticle -> IView [name]"`)
	}

	for _, part := range strings.Split(left, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			required = append(required, part)
		}
	}

	fields := strings.Fields(right)
	if len(fields) == 0 {
		return nil, "", "", fmt.Errorf("query must name a provided interface")
	}
	provided = fields[0]
	if len(fields) > 1 {
		name = fields[1]
	}
	return required, provided, name, nil
}

// View renders the explorer.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("lattice explorer"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("mode: %s  generation: %d", m.mode, m.svc.Generation())))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.errText != "":
		b.WriteString(m.styles.Error.Render(m.errText))
	case m.results != "":
		b.WriteString(m.styles.Result.Render(m.results))
	default:
		help := "enter runs the query in the current mode; tab cycles lookup / lookup-all / subscriptions; esc quits"
		width := m.width
		if width <= 0 {
			width = 80
		}
		b.WriteString(m.styles.Subtle.Render(wordwrap.String(help, width-2)))
	}
	b.WriteString("\n")

	return b.String()
}
