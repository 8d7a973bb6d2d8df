package ui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/manojaccellor/langflow/internal/api"
	"github.com/manojaccellor/langflow/internal/archive"
	"github.com/manojaccellor/langflow/internal/snippet"
)

// writeClipboard is swapped in tests; clipboard access is environment
// dependent.
var writeClipboard = clipboard.WriteAll

// loadFlowsCmd fetches the flow list from the server.
func loadFlowsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return FlowsLoadedMsg{}
		}
		flows, err := client.ListFlows(context.Background())
		return FlowsLoadedMsg{Flows: flows, Err: err}
	}
}

// deployCmd runs one download-mode submission: request, then persist the
// archive when the server streamed one. Exactly one deploySettledMsg comes
// back, tagged with the submission's generation.
func deployCmd(client *api.Client, downloads *archive.Store, flowID string, generation int) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Deploy(context.Background(), flowID)
		if err != nil {
			return deploySettledMsg{Generation: generation, Err: err}
		}

		if result.Archive != nil {
			path, err := downloads.SaveArchive(result.Filename, result.Archive)
			if err != nil {
				return deploySettledMsg{Generation: generation, Err: err}
			}
			return deploySettledMsg{Generation: generation, Outcome: deployOutcome{
				ArchivePath: path,
			}}
		}

		outcome := deployOutcome{
			APIURL:      result.Info.APIURL,
			DocsURL:     result.Info.DocsURL,
			DownloadURL: result.Info.DownloadURL,
		}
		if outcome.APIURL != "" {
			outcome.Samples = snippet.Samples(outcome.APIURL)
		}
		return deploySettledMsg{Generation: generation, Outcome: outcome}
	}
}

// containerizeCmd runs one container-mode submission.
func containerizeCmd(client *api.Client, flowID string, port int, autoDeploy bool, generation int) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Containerize(context.Background(), flowID, api.ContainerizeRequest{
			Port:       port,
			AutoDeploy: autoDeploy,
		})
		if err != nil {
			return deploySettledMsg{Generation: generation, Err: err}
		}

		outcome := deployOutcome{
			Containerized: true,
			ImageName:     result.ImageName,
			Port:          port,
		}
		if result.ContainerInfo != nil {
			outcome.APIURL = result.ContainerInfo.APIURL
			outcome.ContainerName = result.ContainerInfo.ContainerName
			if outcome.APIURL != "" {
				outcome.Samples = snippet.Samples(outcome.APIURL)
			}
		}
		return deploySettledMsg{Generation: generation, Outcome: outcome}
	}
}

// copyCmd writes text to the system clipboard.
func copyCmd(label, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{Label: label, Err: writeClipboard(text)}
	}
}

// saveScriptCmd renders and saves the container deploy script.
func saveScriptCmd(downloads *archive.Store, imageName string, port int) tea.Cmd {
	return func() tea.Msg {
		script, err := snippet.DeployScript(imageName, port)
		if err != nil {
			return scriptSavedMsg{Err: err}
		}
		path, err := downloads.SaveScript(snippet.ScriptFilename, script)
		return scriptSavedMsg{Path: path, Err: err}
	}
}
