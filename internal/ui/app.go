package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/archive"
	"github.com/manojaccellor/langflow/internal/notify"
	"github.com/manojaccellor/langflow/internal/session"
)

// AppModel is the root model: the flow list plus whatever modal is on
// top of it. Alerts feed the status banner under the list.
type AppModel struct {
	Flows      *FlowsView
	Overlays   *OverlayStack
	KeyHandler *KeyHandler
	Client     *api.Client
	Alerts     *notify.Store
	Session    *session.Store
	Downloads  *archive.Store

	width  int
	height int
}

// NewAppModel creates the root application model.
func NewAppModel(client *api.Client, downloads *archive.Store) *AppModel {
	alerts := notify.NewStore()
	sess := session.NewStore()

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("d", func() tea.Msg { return ShowDeployMsg{} }, "Deploy")
	reg.BindWithDesc("SPC d d", func() tea.Msg { return ShowDeployMsg{} }, "Deploy flow")
	reg.BindWithDesc("r", func() tea.Msg { return RefreshFlowsMsg{} }, "Refresh")

	return &AppModel{
		Flows:      NewFlowsView(client, sess),
		Overlays:   &OverlayStack{},
		KeyHandler: NewKeyHandler(reg),
		Client:     client,
		Alerts:     alerts,
		Session:    sess,
		Downloads:  downloads,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Flows.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		v, cmd := a.Flows.Update(msg)
		a.setFlows(v)
		return a, cmd

	case SelectFlowMsg:
		a.Alerts.Clear()
		return a, nil

	case AlertsChangedMsg:
		// Nothing to mutate; the banner reads the store on render.
		return a, nil

	case ShowDeployMsg:
		return a.handleShowDeploy()

	case DismissModalMsg:
		if a.Overlays.Len() > 0 {
			a.Overlays.Pop()
		}
		return a, nil

	case deploySettledMsg:
		return a.handleDeploySettled(msg)

	case clipboardResultMsg:
		return a.handleClipboardResult(msg)

	case scriptSavedMsg:
		return a.handleScriptSaved(msg)

	case RefreshFlowsMsg:
		v, cmd := a.Flows.Update(msg)
		a.setFlows(v)
		return a, cmd

	case FlowsLoadedMsg:
		if msg.Err != nil {
			a.Alerts.SetError("Could not load flows", msg.Err.Error())
		}
		v, cmd := a.Flows.Update(msg)
		a.setFlows(v)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (spinner ticks, list internals) goes to whichever
	// view is active.
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}
	v, cmd := a.Flows.Update(msg)
	a.setFlows(v)
	return a, cmd
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open modal owns the keyboard; the leader key and app bindings
	// are suspended until it closes.
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}

	// Same while the list filter is typing: "q" in a filter query must
	// not quit, "d" must not open the deploy dialog.
	if !a.Flows.Filtering() {
		if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
			return a, keyCmd
		}
	}

	v, cmd := a.Flows.Update(msg)
	a.setFlows(v)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var base string
	if top, ok := a.Overlays.Peek(); ok {
		base = top.View.View()
	} else {
		base = a.Flows.View()
		if hints := a.KeyHandler.Registry.Hints(); len(hints) > 0 {
			base += "\n" + Styles.Hint.Render(strings.Join(hints, "  "))
		}
	}
	if banner := a.renderBanner(); banner != "" {
		base += "\n" + banner
	}
	if a.KeyHandler.LeaderWaiting {
		base += "\n" + Styles.Hint.Render("SPC-")
	}
	return base
}

func (a *appModelAdapter) renderBanner() string {
	n := a.Alerts.Current()
	if n == nil {
		return ""
	}
	text := n.Title
	if len(n.Details) > 0 {
		text += ": " + strings.Join(n.Details, "; ")
	}
	if n.Kind == notify.KindError {
		return Styles.BannerError.Render(text)
	}
	return Styles.BannerOK.Render(text)
}

func (a *appModelAdapter) setFlows(v View) {
	if fv, ok := v.(*FlowsView); ok {
		a.Flows = fv
	}
}
