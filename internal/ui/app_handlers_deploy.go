package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleShowDeploy opens the deploy dialog for the current flow. With no
// flow selected there is nothing to deploy, so the trigger surfaces an
// error instead of an empty dialog.
func (a *appModelAdapter) handleShowDeploy() (tea.Model, tea.Cmd) {
	flow := a.Session.Current()
	if flow.IsZero() {
		a.Alerts.SetError("Cannot deploy flow", "No flow is currently selected")
		return a, nil
	}
	if a.Overlays.Len() > 0 {
		return a, nil
	}
	modal := NewDeployModal(flow, a.Client, a.Alerts, a.Downloads)
	a.Overlays.Push(Overlay{View: modal})
	return a, modal.Init()
}

// handleDeploySettled routes a finished submission to the open dialog.
// With the dialog already closed the result is dropped; the generation
// check inside the modal covers the reopen case.
func (a *appModelAdapter) handleDeploySettled(msg deploySettledMsg) (tea.Model, tea.Cmd) {
	cmd, _ := a.Overlays.UpdateTop(msg)
	return a, cmd
}

// handleClipboardResult reports a copy attempt in the status banner.
// Clipboard failures never interrupt the dialog.
func (a *appModelAdapter) handleClipboardResult(msg clipboardResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Alerts.SetError("Clipboard unavailable", msg.Err.Error())
		return a, nil
	}
	a.Alerts.SetSuccess("Copied to clipboard", msg.Label)
	return a, nil
}

// handleScriptSaved reports the deploy-script download.
func (a *appModelAdapter) handleScriptSaved(msg scriptSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.Alerts.SetError("Could not save deploy script", msg.Err.Error())
		return a, nil
	}
	a.Alerts.SetSuccess("Deploy script saved", msg.Path)
	return a, nil
}
