package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/session"
)

// flowItem adapts a flow summary to the list widget.
type flowItem struct {
	flow session.Flow
}

func (i flowItem) Title() string       { return i.flow.Name }
func (i flowItem) Description() string { return i.flow.ID }
func (i flowItem) FilterValue() string { return i.flow.Name + " " + i.flow.ID }

// FlowsView lists the flows on the server and tracks which one is
// selected for deployment.
type FlowsView struct {
	list    list.Model
	spinner spinner.Model
	client  *api.Client
	session *session.Store

	loading   bool
	loadErr   error
	preselect string
	width     int
	height    int
}

var _ View = (*FlowsView)(nil)

// NewFlowsView creates the list in its loading state; Init fires the
// first fetch.
func NewFlowsView(client *api.Client, sess *session.Store) *FlowsView {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(ColorHighlight)).
		BorderLeftForeground(lipgloss.Color(ColorHighlight))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color(ColorMuted)).
		BorderLeftForeground(lipgloss.Color(ColorHighlight))

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Flows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &FlowsView{
		list:    l,
		spinner: s,
		client:  client,
		session: sess,
		loading: true,
	}
}

// Preselect marks a flow id to select (and store in the session) as soon
// as the list loads.
func (v *FlowsView) Preselect(flowID string) {
	v.preselect = flowID
}

// Filtering reports whether the list's filter input is capturing
// keystrokes.
func (v *FlowsView) Filtering() bool {
	return v.list.SettingFilter()
}

// Selected returns the flow under the cursor, or a zero flow when the
// list is empty.
func (v *FlowsView) Selected() session.Flow {
	item, ok := v.list.SelectedItem().(flowItem)
	if !ok {
		return session.Flow{}
	}
	return item.flow
}

// Init implements View.
func (v *FlowsView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, loadFlowsCmd(v.client))
}

// Update implements View.
func (v *FlowsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.list.SetSize(msg.Width-2, msg.Height-4)
		return v, nil

	case FlowsLoadedMsg:
		v.loading = false
		v.loadErr = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		items := make([]list.Item, 0, len(msg.Flows))
		for _, f := range msg.Flows {
			items = append(items, flowItem{flow: session.Flow{ID: f.ID, Name: f.Name}})
		}
		cmd := v.list.SetItems(items)
		// A refresh can drop the flow the session points at (deleted on
		// the server); a stale selection must not stay deployable.
		if current := v.session.Current(); !current.IsZero() {
			found := false
			for _, f := range msg.Flows {
				if f.ID == current.ID {
					found = true
					break
				}
			}
			if !found {
				v.session.Clear()
			}
		}
		if v.preselect != "" {
			for i, it := range items {
				if it.(flowItem).flow.ID == v.preselect {
					v.list.Select(i)
					v.session.SetCurrent(it.(flowItem).flow)
					break
				}
			}
			v.preselect = ""
		}
		return v, cmd

	case RefreshFlowsMsg:
		v.loading = true
		v.loadErr = nil
		return v, tea.Batch(v.spinner.Tick, loadFlowsCmd(v.client))

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		// While the filter input is open, enter applies the filter; the
		// list owns the key.
		if msg.String() == "enter" && !v.loading && !v.list.SettingFilter() {
			flow := v.Selected()
			if !flow.IsZero() {
				v.session.SetCurrent(flow)
				return v, func() tea.Msg { return SelectFlowMsg{Flow: flow} }
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *FlowsView) View() string {
	if v.loading {
		return fmt.Sprintf("\n %s Loading flows…\n", v.spinner.View())
	}
	if v.loadErr != nil {
		return "\n " + Styles.TitleDanger.Render("Could not load flows") + "\n " +
			Styles.Details.Render(v.loadErr.Error()) + "\n\n " +
			Styles.Hint.Render("r: retry")
	}
	return v.list.View()
}
