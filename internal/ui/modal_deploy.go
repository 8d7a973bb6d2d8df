package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/archive"
	"github.com/manojaccellor/langflow/internal/notify"
	"github.com/manojaccellor/langflow/internal/session"
	"github.com/manojaccellor/langflow/internal/snippet"
)

// deployMode selects what the server produces: a downloadable app or a
// container image.
type deployMode int

const (
	modeDownload deployMode = iota
	modeContainer
)

func (m deployMode) String() string {
	if m == modeContainer {
		return "container"
	}
	return "download"
}

// defaultPort matches the port the generated app listens on.
const defaultPort = "8000"

// dockerUnavailableText is the dedicated message for the container-runtime
// failure kind, distinct from generic failure text.
const dockerUnavailableText = "Container runtime not available on the server"

// formField is the focused field in the configuring form.
type formField int

const (
	fieldMode formField = iota
	fieldPort
	fieldAutoDeploy
)

// deployForm holds the user's deployment configuration.
type deployForm struct {
	mode       deployMode
	port       textinput.Model
	autoDeploy bool
	focus      formField
	fieldErr   string
}

func newDeployForm() deployForm {
	ti := textinput.New()
	ti.Placeholder = defaultPort
	ti.SetValue(defaultPort)
	ti.CharLimit = 5
	ti.Width = 7
	return deployForm{mode: modeDownload, port: ti, focus: fieldMode}
}

// portValue parses the port field. Returns an error message for display
// when the value is not a usable port.
func (f *deployForm) portValue() (int, string) {
	raw := strings.TrimSpace(f.port.Value())
	if raw == "" {
		raw = defaultPort
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Sprintf("invalid port %q", raw)
	}
	return port, ""
}

// deployOutcome is what a settled submission produced, in display form.
type deployOutcome struct {
	// download mode
	APIURL      string
	DocsURL     string
	DownloadURL string
	ArchivePath string

	// container mode
	Containerized bool
	ImageName     string
	ContainerName string
	Port          int

	Samples []snippet.Sample
}

// modalState is the deploy dialog's tagged state union: exactly one of
// these at a time, so an in-flight form can't also show a result.
type modalState interface{ modalState() }

type configuringState struct{ form deployForm }
type inFlightState struct{ form deployForm }
type succeededState struct {
	outcome deployOutcome
	tab     int
}
type failedState struct {
	form   deployForm
	reason string
}

func (configuringState) modalState() {}
func (inFlightState) modalState()    {}
func (succeededState) modalState()   {}
func (failedState) modalState()      {}

// submitSeq numbers submissions across all dialog instances. Updates run
// on the single Bubble Tea loop, so no lock. A per-instance counter would
// collide: a closed dialog's first submission and a reopened dialog's
// first submission would share a number, and the stale response would
// pass the generation check.
var submitSeq int

func nextGeneration() int {
	submitSeq++
	return submitSeq
}

// DeployModal is the deploy dialog. Each open constructs a fresh modal, so
// reopening always starts from defaults. One submission is in flight at
// most; the generation counter discards responses that settle after the
// dialog moved on.
type DeployModal struct {
	flow      session.Flow
	client    *api.Client
	alerts    *notify.Store
	downloads *archive.Store

	state      modalState
	generation int
	spinner    spinner.Model
}

// Ensure DeployModal implements View.
var _ View = (*DeployModal)(nil)

// NewDeployModal creates the dialog for a flow in its initial configuring
// state.
func NewDeployModal(flow session.Flow, client *api.Client, alerts *notify.Store, downloads *archive.Store) *DeployModal {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	return &DeployModal{
		flow:      flow,
		client:    client,
		alerts:    alerts,
		downloads: downloads,
		state:     configuringState{form: newDeployForm()},
		spinner:   s,
	}
}

// InFlight reports whether a submission is outstanding; the submit control
// is disabled for exactly that window.
func (m *DeployModal) InFlight() bool {
	_, ok := m.state.(inFlightState)
	return ok
}

// Init implements View.
func (m *DeployModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *DeployModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case deploySettledMsg:
		return m.handleSettled(msg)
	case spinner.TickMsg:
		if m.InFlight() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DeployModal) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if msg.String() == "esc" {
		// Closing never cancels an in-flight request; the generation
		// guard discards its late response instead.
		return m, func() tea.Msg { return DismissModalMsg{} }
	}

	switch state := m.state.(type) {
	case configuringState:
		form, cmd, submitted := m.updateForm(state.form, msg)
		if submitted != nil {
			m.state = inFlightState{form: form}
			return m, tea.Batch(submitted, m.spinner.Tick)
		}
		m.state = configuringState{form: form}
		return m, cmd
	case failedState:
		// Same form handling as configuring: the dialog stays open after
		// a failure so the user can adjust and retry by hand.
		form, cmd, submitted := m.updateForm(state.form, msg)
		if submitted != nil {
			m.state = inFlightState{form: form}
			return m, tea.Batch(submitted, m.spinner.Tick)
		}
		m.state = failedState{form: form, reason: state.reason}
		return m, cmd
	case inFlightState:
		// Submit stays disabled until the request settles.
		return m, nil
	case succeededState:
		return m.handleResultKey(state, msg)
	}
	return m, nil
}

// updateForm applies one key to the form. When the key was a valid
// confirm, the returned submit command is non-nil and carries the request.
func (m *DeployModal) updateForm(form deployForm, msg tea.KeyMsg) (deployForm, tea.Cmd, tea.Cmd) {
	switch msg.String() {
	case "enter":
		submit, fieldErr := m.submitCmd(&form)
		if fieldErr != "" {
			form.fieldErr = fieldErr
			return form, nil, nil
		}
		return form, nil, submit
	case "tab", "down":
		form = m.cycleFocus(form, +1)
		return form, nil, nil
	case "shift+tab", "up":
		form = m.cycleFocus(form, -1)
		return form, nil, nil
	case "left", "right", "h", "l":
		if form.focus == fieldMode {
			form = toggleMode(form)
			return form, nil, nil
		}
	case " ":
		switch form.focus {
		case fieldMode:
			form = toggleMode(form)
		case fieldAutoDeploy:
			form.autoDeploy = !form.autoDeploy
		}
		return form, nil, nil
	}

	if form.focus == fieldPort {
		var cmd tea.Cmd
		form.port, cmd = form.port.Update(msg)
		form.fieldErr = ""
		return form, cmd, nil
	}
	return form, nil, nil
}

// submitCmd validates the form and builds the request command for it.
// A non-empty second return is a field error; no request is issued.
func (m *DeployModal) submitCmd(form *deployForm) (tea.Cmd, string) {
	if form.mode == modeDownload {
		m.generation = nextGeneration()
		return deployCmd(m.client, m.downloads, m.flow.ID, m.generation), ""
	}
	port, fieldErr := form.portValue()
	if fieldErr != "" {
		return nil, fieldErr
	}
	m.generation = nextGeneration()
	return containerizeCmd(m.client, m.flow.ID, port, form.autoDeploy, m.generation), ""
}

func (m *DeployModal) cycleFocus(form deployForm, dir int) deployForm {
	if form.mode == modeDownload {
		form.focus = fieldMode
		form.port.Blur()
		return form
	}
	fields := []formField{fieldMode, fieldPort, fieldAutoDeploy}
	idx := 0
	for i, f := range fields {
		if f == form.focus {
			idx = i
		}
	}
	form.focus = fields[(idx+dir+len(fields))%len(fields)]
	if form.focus == fieldPort {
		form.port.Focus()
	} else {
		form.port.Blur()
	}
	return form
}

func toggleMode(form deployForm) deployForm {
	if form.mode == modeDownload {
		form.mode = modeContainer
	} else {
		form.mode = modeDownload
		form.focus = fieldMode
		form.port.Blur()
	}
	return form
}

// handleSettled applies a finished submission. Responses from a previous
// generation are dropped: the dialog they belong to is gone.
func (m *DeployModal) handleSettled(msg deploySettledMsg) (View, tea.Cmd) {
	if msg.Generation != m.generation {
		return m, nil
	}
	state, ok := m.state.(inFlightState)
	if !ok {
		return m, nil
	}

	if msg.Err != nil {
		reason := errorReason(msg.Err)
		if api.IsDockerUnavailable(msg.Err) {
			m.alerts.SetError("Cannot containerize flow", dockerUnavailableText)
			reason = dockerUnavailableText
		} else {
			m.alerts.SetError("Deploy failed", reason)
		}
		m.state = failedState{form: state.form, reason: reason}
		return m, nil
	}

	outcome := msg.Outcome
	switch {
	case outcome.ArchivePath != "":
		m.alerts.SetSuccess("Flow deployed", "Archive saved to "+outcome.ArchivePath)
	case outcome.Containerized:
		m.alerts.SetSuccess("Flow containerized", "Image "+outcome.ImageName)
	default:
		m.alerts.SetSuccess("Flow deployed", outcome.APIURL)
	}
	m.state = succeededState{outcome: outcome}
	return m, nil
}

func errorReason(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

func (m *DeployModal) handleResultKey(state succeededState, msg tea.KeyMsg) (View, tea.Cmd) {
	outcome := state.outcome
	switch msg.String() {
	case "tab", "right", "l":
		if len(outcome.Samples) > 0 {
			state.tab = (state.tab + 1) % len(outcome.Samples)
			m.state = state
		}
		return m, nil
	case "shift+tab", "left", "h":
		if len(outcome.Samples) > 0 {
			state.tab = (state.tab - 1 + len(outcome.Samples)) % len(outcome.Samples)
			m.state = state
		}
		return m, nil
	case "c":
		if outcome.Containerized && len(outcome.Samples) == 0 {
			return m, copyCmd("run command", snippet.DockerRunCommand(outcome.ImageName, outcome.Port))
		}
		if len(outcome.Samples) > 0 {
			sample := outcome.Samples[state.tab]
			return m, copyCmd(sample.Name+" sample", sample.Code)
		}
		return m, nil
	case "u":
		if outcome.APIURL != "" {
			return m, copyCmd("API URL", outcome.APIURL)
		}
		return m, nil
	case "s":
		if outcome.Containerized {
			return m, saveScriptCmd(m.downloads, outcome.ImageName, outcome.Port)
		}
		return m, nil
	}
	return m, nil
}

// View implements View.
func (m *DeployModal) View() string {
	switch state := m.state.(type) {
	case configuringState:
		return Styles.Box.Render(m.viewForm(state.form, "", false))
	case inFlightState:
		return Styles.Box.Render(m.viewForm(state.form, "", true))
	case failedState:
		return Styles.BoxDanger.Render(m.viewForm(state.form, state.reason, false))
	case succeededState:
		return Styles.Box.Render(m.viewResult(state))
	}
	return ""
}

func (m *DeployModal) viewForm(form deployForm, reason string, inFlight bool) string {
	var b strings.Builder
	if reason != "" {
		b.WriteString(Styles.TitleDanger.Render("Deploy failed") + "\n")
		b.WriteString(Styles.Details.Render(reason) + "\n\n")
	} else {
		b.WriteString(Styles.Title.Render("Deploy flow") + "\n\n")
	}
	b.WriteString(Styles.Label.Render("Flow: ") + Styles.Value.Render(m.flow.DisplayName()) + "\n\n")

	b.WriteString(fieldMarker(form.focus == fieldMode))
	b.WriteString(Styles.Label.Render("Mode        ") + modeChoice(form.mode) + "\n")

	if form.mode == modeContainer {
		b.WriteString(fieldMarker(form.focus == fieldPort))
		b.WriteString(Styles.Label.Render("Port        ") + form.port.View() + "\n")
		b.WriteString(fieldMarker(form.focus == fieldAutoDeploy))
		b.WriteString(Styles.Label.Render("Auto-deploy ") + checkbox(form.autoDeploy) + "\n")
	}

	if form.fieldErr != "" {
		b.WriteString("\n" + Styles.Details.Render(form.fieldErr) + "\n")
	}

	b.WriteString("\n")
	switch {
	case inFlight:
		b.WriteString(m.spinner.View() + " Deploying…\n")
		b.WriteString(Styles.Hint.Render("Esc: close (the request keeps running)"))
	case reason != "":
		b.WriteString(Styles.Hint.Render("Enter: retry  Tab: next field  ←/→: mode  Esc: close"))
	default:
		b.WriteString(Styles.Hint.Render("Enter: deploy  Tab: next field  ←/→: mode  Esc: cancel"))
	}
	return b.String()
}

func (m *DeployModal) viewResult(state succeededState) string {
	outcome := state.outcome
	var b strings.Builder

	if outcome.Containerized {
		b.WriteString(Styles.Title.Render("Flow containerized") + "\n\n")
		b.WriteString(Styles.Label.Render("Image: ") + Styles.Value.Render(outcome.ImageName) + "\n")
		if outcome.ContainerName != "" {
			b.WriteString(Styles.Label.Render("Container: ") + Styles.Value.Render(outcome.ContainerName) + "\n")
		}
		b.WriteString("\n" + Styles.Label.Render("Run it with:") + "\n")
		b.WriteString(Styles.CodeBlock.Render(snippet.DockerRunCommand(outcome.ImageName, outcome.Port)) + "\n")
	} else {
		b.WriteString(Styles.Title.Render("Flow deployed") + "\n\n")
		if outcome.ArchivePath != "" {
			b.WriteString(Styles.Label.Render("Archive saved to ") + Styles.Value.Render(outcome.ArchivePath) + "\n")
		}
	}

	if outcome.APIURL != "" {
		b.WriteString(Styles.Label.Render("API URL: ") + Styles.Value.Render(outcome.APIURL) + "\n")
	}
	if outcome.DocsURL != "" {
		b.WriteString(Styles.Label.Render("Docs:    ") + Styles.Value.Render(outcome.DocsURL) + "\n")
	}
	if outcome.DownloadURL != "" {
		b.WriteString(Styles.Label.Render("Archive: ") + Styles.Value.Render(outcome.DownloadURL) + "\n")
	}

	if len(outcome.Samples) > 0 {
		b.WriteString("\n" + m.viewSampleTabs(state) + "\n")
	}

	b.WriteString("\n" + Styles.Hint.Render(m.resultHints(outcome)))
	return b.String()
}

func (m *DeployModal) viewSampleTabs(state succeededState) string {
	var tabs []string
	for i, s := range state.outcome.Samples {
		if i == state.tab {
			tabs = append(tabs, Styles.TabActive.Render(s.Name))
		} else {
			tabs = append(tabs, Styles.TabInactive.Render(s.Name))
		}
	}
	header := strings.Join(tabs, Styles.Muted.Render("  |  "))
	code := Styles.CodeBlock.Render(state.outcome.Samples[state.tab].Code)
	return header + "\n" + code
}

func (m *DeployModal) resultHints(outcome deployOutcome) string {
	var hints []string
	if len(outcome.Samples) > 0 {
		hints = append(hints, "tab: next sample", "c: copy sample")
	} else if outcome.Containerized {
		hints = append(hints, "c: copy run command")
	}
	if outcome.APIURL != "" {
		hints = append(hints, "u: copy URL")
	}
	if outcome.Containerized {
		hints = append(hints, "s: save deploy script")
	}
	hints = append(hints, "esc: close")
	return strings.Join(hints, "  ")
}

func fieldMarker(focused bool) string {
	if focused {
		return Styles.FieldFocused.Render("▸ ")
	}
	return "  "
}

func modeChoice(mode deployMode) string {
	download := "○ Download"
	container := "○ Container"
	if mode == modeDownload {
		download = "● Download"
	} else {
		container = "● Container"
	}
	return Styles.Value.Render(download) + "   " + Styles.Value.Render(container)
}

func checkbox(checked bool) string {
	if checked {
		return Styles.Value.Render("[x]")
	}
	return Styles.Value.Render("[ ]")
}
