package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/archive"
	"github.com/manojaccellor/langflow/internal/notify"
	"github.com/manojaccellor/langflow/internal/session"
	"github.com/manojaccellor/langflow/internal/snippet"
)

func newTestModal(t *testing.T) (*DeployModal, *notify.Store) {
	t.Helper()
	client, err := api.New(api.Options{BaseURL: "http://localhost:7860/api/v1/"})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	downloads, err := archive.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("archive.NewStore: %v", err)
	}
	alerts := notify.NewStore()
	flow := session.Flow{ID: "abc123", Name: "Basic Prompting"}
	return NewDeployModal(flow, client, alerts, downloads), alerts
}

func TestDeployModal_StartsConfiguringWithDefaults(t *testing.T) {
	m, _ := newTestModal(t)

	state, ok := m.state.(configuringState)
	if !ok {
		t.Fatalf("expected configuringState, got %T", m.state)
	}
	if state.form.mode != modeDownload {
		t.Errorf("expected download mode, got %v", state.form.mode)
	}
	if state.form.autoDeploy {
		t.Error("auto-deploy should default off")
	}
	if got := state.form.port.Value(); got != defaultPort {
		t.Errorf("port default = %q, want %q", got, defaultPort)
	}
}

func TestDeployModal_SubmitMovesInFlight(t *testing.T) {
	m, _ := newTestModal(t)

	v, cmd := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	if !m.InFlight() {
		t.Fatalf("expected in-flight after enter, got %T", m.state)
	}
	if cmd == nil {
		t.Fatal("expected submission command")
	}
	if m.generation == 0 {
		t.Error("expected a generation assigned to the submission")
	}
}

func TestDeployModal_SubmitDisabledWhileInFlight(t *testing.T) {
	m, _ := newTestModal(t)

	v, _ := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	submitted := m.generation

	v, cmd := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	if cmd != nil {
		t.Error("second enter while in flight should issue nothing")
	}
	if m.generation != submitted {
		t.Errorf("generation = %d, want %d (no second submission)", m.generation, submitted)
	}
}

func TestDeployModal_SettleSuccessShowsResult(t *testing.T) {
	m, alerts := newTestModal(t)
	changes := 0
	alerts.SetOnChange(func() { changes++ })

	v, _ := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)

	v, _ = m.Update(deploySettledMsg{Generation: m.generation, Outcome: deployOutcome{
		APIURL:  "https://x/y",
		DocsURL: "https://x/y/docs",
		Samples: snippet.Samples("https://x/y"),
	}})
	m = v.(*DeployModal)

	state, ok := m.state.(succeededState)
	if !ok {
		t.Fatalf("expected succeededState, got %T", m.state)
	}
	if len(state.outcome.Samples) != 3 {
		t.Errorf("expected 3 code samples, got %d", len(state.outcome.Samples))
	}
	if changes != 1 {
		t.Errorf("expected exactly one notification, got %d", changes)
	}
	n := alerts.Current()
	if n == nil || n.Kind != notify.KindSuccess {
		t.Fatalf("expected success notification, got %+v", n)
	}

	out := m.View()
	if !strings.Contains(out, "https://x/y") {
		t.Error("result view should show the API URL")
	}
}

func TestDeployModal_StaleSettleDiscarded(t *testing.T) {
	m, alerts := newTestModal(t)

	v, _ := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)

	v, _ = m.Update(deploySettledMsg{Generation: m.generation - 1, Outcome: deployOutcome{APIURL: "https://stale"}})
	m = v.(*DeployModal)

	if !m.InFlight() {
		t.Errorf("stale settle should be dropped, got %T", m.state)
	}
	if alerts.Current() != nil {
		t.Error("stale settle should not notify")
	}
}

func TestDeployModal_FailureKeepsDialogOpenForRetry(t *testing.T) {
	m, alerts := newTestModal(t)

	v, _ := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	firstGen := m.generation

	v, _ = m.Update(deploySettledMsg{Generation: firstGen, Err: &api.Error{Status: 500, Detail: "flow build failed"}})
	m = v.(*DeployModal)

	state, ok := m.state.(failedState)
	if !ok {
		t.Fatalf("expected failedState, got %T", m.state)
	}
	if !strings.Contains(state.reason, "flow build failed") {
		t.Errorf("reason = %q", state.reason)
	}
	n := alerts.Current()
	if n == nil || n.Kind != notify.KindError {
		t.Fatalf("expected error notification, got %+v", n)
	}

	// Retry is a fresh submission with a new generation.
	v, cmd := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	if !m.InFlight() || cmd == nil {
		t.Fatalf("expected retry to submit again, state %T", m.state)
	}
	if m.generation <= firstGen {
		t.Errorf("retry generation = %d, want > %d", m.generation, firstGen)
	}
}

func TestDeployModal_DockerUnavailableMessage(t *testing.T) {
	m, alerts := newTestModal(t)

	v, _ := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)

	v, _ = m.Update(deploySettledMsg{Generation: m.generation, Err: &api.Error{Status: 503, Detail: "Docker is not installed on the server"}})
	m = v.(*DeployModal)

	state, ok := m.state.(failedState)
	if !ok {
		t.Fatalf("expected failedState, got %T", m.state)
	}
	if state.reason != dockerUnavailableText {
		t.Errorf("reason = %q, want %q", state.reason, dockerUnavailableText)
	}
	n := alerts.Current()
	if n == nil || len(n.Details) == 0 || n.Details[0] != dockerUnavailableText {
		t.Fatalf("expected container runtime notice, got %+v", n)
	}
}

func TestDeployModal_ContainerModePortValidation(t *testing.T) {
	m, _ := newTestModal(t)

	v, _ := m.Update(keyMsg("right")) // switch to container mode
	m = v.(*DeployModal)
	v, _ = m.Update(keyMsg("tab")) // focus port
	m = v.(*DeployModal)

	state := m.state.(configuringState)
	state.form.port.SetValue("not-a-port")
	m.state = state
	before := m.generation

	v, cmd := m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	if cmd != nil {
		t.Error("invalid port must not submit")
	}
	after, ok := m.state.(configuringState)
	if !ok {
		t.Fatalf("expected configuringState, got %T", m.state)
	}
	if after.form.fieldErr == "" {
		t.Error("expected a field error for the bad port")
	}
	if m.generation != before {
		t.Errorf("generation = %d, want %d (nothing submitted)", m.generation, before)
	}
}

func TestDeployModal_CopySampleUsesActiveTab(t *testing.T) {
	m, _ := newTestModal(t)

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	samples := snippet.Samples("https://x/y")
	m.state = succeededState{outcome: deployOutcome{APIURL: "https://x/y", Samples: samples}}

	v, _ := m.Update(keyMsg("tab")) // second tab
	m = v.(*DeployModal)
	v, cmd := m.Update(keyMsg("c"))
	m = v.(*DeployModal)
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	res, ok := cmd().(clipboardResultMsg)
	if !ok {
		t.Fatalf("expected clipboardResultMsg, got %T", cmd())
	}
	if res.Err != nil {
		t.Fatalf("copy failed: %v", res.Err)
	}
	if copied != samples[1].Code {
		t.Errorf("copied the wrong sample:\n%s", copied)
	}
	if !strings.Contains(copied, "https://x/y/run") {
		t.Error("sample should target the run endpoint")
	}
}

func TestDeployModal_CopyAPIURL(t *testing.T) {
	m, _ := newTestModal(t)

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	m.state = succeededState{outcome: deployOutcome{APIURL: "https://x/y"}}
	_, cmd := m.Update(keyMsg("u"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	cmd()
	if copied != "https://x/y" {
		t.Errorf("copied %q, want the API URL", copied)
	}
}

func TestDeployModal_ContainerizedResultView(t *testing.T) {
	m, _ := newTestModal(t)
	m.state = succeededState{outcome: deployOutcome{
		Containerized: true,
		ImageName:     "flow-abc",
		Port:          9090,
	}}

	out := m.View()
	if !strings.Contains(out, "docker run -d -p 9090:8000 --name flow-abc-container flow-abc") {
		t.Errorf("missing run command in:\n%s", out)
	}
	if strings.Contains(out, "API URL") {
		t.Error("no live URL should be shown without container info")
	}
}

func TestDeployModal_SaveScript(t *testing.T) {
	client, err := api.New(api.Options{BaseURL: "http://localhost:7860/api/v1/"})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	dir := t.TempDir()
	downloads, err := archive.NewStore(dir)
	if err != nil {
		t.Fatalf("archive.NewStore: %v", err)
	}
	m := NewDeployModal(session.Flow{ID: "abc123", Name: "Basic Prompting"}, client, notify.NewStore(), downloads)
	m.state = succeededState{outcome: deployOutcome{
		Containerized: true,
		ImageName:     "flow-abc",
		Port:          9090,
	}}

	_, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	res, ok := cmd().(scriptSavedMsg)
	if !ok {
		t.Fatalf("expected scriptSavedMsg, got %T", cmd())
	}
	if res.Err != nil {
		t.Fatalf("save failed: %v", res.Err)
	}
	if filepath.Base(res.Path) != snippet.ScriptFilename {
		t.Errorf("script saved as %q", res.Path)
	}
	content, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	for _, want := range []string{"#!/bin/sh", "flow-abc", "9090"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestDeployModal_ReopenStartsFresh(t *testing.T) {
	m, _ := newTestModal(t)

	v, _ := m.Update(keyMsg("right"))
	m = v.(*DeployModal)
	v, _ = m.Update(keyMsg("enter"))
	m = v.(*DeployModal)
	if !m.InFlight() {
		t.Fatalf("setup: expected in-flight, got %T", m.state)
	}

	// A new dialog for the same flow shares nothing with the old one.
	fresh, _ := newTestModal(t)
	state, ok := fresh.state.(configuringState)
	if !ok {
		t.Fatalf("expected configuringState, got %T", fresh.state)
	}
	if state.form.mode != modeDownload {
		t.Error("reopened dialog should be back to download mode")
	}
	if fresh.generation != 0 {
		t.Errorf("generation = %d, want 0", fresh.generation)
	}
}
