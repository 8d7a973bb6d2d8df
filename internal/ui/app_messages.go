package ui

import (
	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/session"
)

// FlowsLoadedMsg is sent when the flow list arrives from the server.
type FlowsLoadedMsg struct {
	Flows []api.FlowSummary
	Err   error
}

// SelectFlowMsg is sent when the user picks a flow from the list.
type SelectFlowMsg struct {
	Flow session.Flow
}

// ShowDeployMsg triggers the deploy dialog for the currently selected flow
// ('d' or SPC d d).
type ShowDeployMsg struct{}

// DismissModalMsg is sent when the user cancels the top modal (Esc).
type DismissModalMsg struct{}

// RefreshFlowsMsg triggers a reload of the flow list ('r').
type RefreshFlowsMsg struct{}

// AlertsChangedMsg is pushed into the program when the alert store changes
// outside an Update cycle, forcing a banner re-render. It carries nothing;
// the banner reads the store directly.
type AlertsChangedMsg struct{}

// deploySettledMsg is the single terminal message of one deploy or
// containerize submission. Generation ties it to the submission that
// started it; stale generations are discarded (the dialog may have been
// closed and reopened while the request was in flight).
type deploySettledMsg struct {
	Generation int
	Outcome    deployOutcome
	Err        error
}

// clipboardResultMsg reports a copy-to-clipboard attempt. Failures are
// surfaced as a non-blocking notice, never an uncaught error.
type clipboardResultMsg struct {
	Label string
	Err   error
}

// scriptSavedMsg reports the deploy-script download.
type scriptSavedMsg struct {
	Path string
	Err  error
}
