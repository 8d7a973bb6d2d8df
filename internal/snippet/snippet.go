// Package snippet renders the client-code samples and the container deploy
// script shown after a successful deployment. Everything here is pure
// string templating over the URLs and metadata the server returned.
package snippet

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RunSuffix is the inference endpoint every generated app exposes.
const RunSuffix = "/run"

// ExamplePayload is the constant request body shown in every sample.
const ExamplePayload = `{"query": "What is machine learning?"}`

// ScriptFilename is the download name for the generated deploy script.
const ScriptFilename = "deploy-langflow.sh"

// Sample is one generated code snippet for a tab in the result view.
type Sample struct {
	Name string // tab label
	Code string
}

// RunURL joins the deployed API URL with the inference endpoint.
func RunURL(apiURL string) string {
	return strings.TrimSuffix(apiURL, "/") + RunSuffix
}

const pythonSample = `import requests

url = "{{ .RunURL }}"
payload = {{ .Payload }}

response = requests.post(url, json=payload)
response.raise_for_status()
print(response.json())
`

const fetchSample = `fetch("{{ .RunURL }}", {
  method: "POST",
  headers: { "Content-Type": "application/json" },
  body: JSON.stringify({{ .Payload }}),
})
  .then((res) => res.json())
  .then((data) => console.log(data));
`

const curlSample = `curl -X POST "{{ .RunURL }}" \
  -H "Content-Type: application/json" \
  -d '{{ .Payload }}'
`

var sampleTemplates = []struct {
	name string
	tmpl *template.Template
}{
	{"Python", mustParse("python", pythonSample)},
	{"JavaScript", mustParse("javascript", fetchSample)},
	{"cURL", mustParse("curl", curlSample)},
}

// Samples renders the three code samples for a deployed flow URL, in tab
// order: imperative HTTP client, fetch, command line.
func Samples(apiURL string) []Sample {
	data := struct {
		RunURL  string
		Payload string
	}{
		RunURL:  RunURL(apiURL),
		Payload: ExamplePayload,
	}
	samples := make([]Sample, 0, len(sampleTemplates))
	for _, st := range sampleTemplates {
		var b strings.Builder
		// Templates are fixed at compile time; render cannot fail on this data.
		_ = st.tmpl.Execute(&b, data)
		samples = append(samples, Sample{Name: st.name, Code: b.String()})
	}
	return samples
}

// DockerRunCommand is the run command shown in the container metadata panel
// and embedded in the deploy script. The generated app always listens on
// 8000 inside the container.
func DockerRunCommand(imageName string, port int) string {
	return fmt.Sprintf("docker run -d -p %d:8000 --name %s-container %s", port, imageName, imageName)
}

const deployScript = `#!/bin/sh
set -eu

# Deploy script for the {{ .ImageName }} image.
# Runs the container locally, then tags and pushes it to a registry.
REGISTRY="${REGISTRY:-{{ .Registry | default "localhost:5000" }}}"

{{ .RunCommand }}

docker tag {{ .ImageName }} ${REGISTRY}/{{ .ImageName }}:port-{{ .Port }}
docker push ${REGISTRY}/{{ .ImageName }}:port-{{ .Port }}

echo "{{ .ImageName }} is listening on http://localhost:{{ .Port }}"
`

var deployScriptTmpl = mustParse("deploy-script", deployScript)

// DeployScript renders the shell script offered for download after a
// container build: run, tag, and push, parameterized by image name and
// host port.
func DeployScript(imageName string, port int) (string, error) {
	if imageName == "" {
		return "", fmt.Errorf("snippet: deploy script requires an image name")
	}
	if port <= 0 {
		return "", fmt.Errorf("snippet: deploy script requires a positive port, got %d", port)
	}
	var b strings.Builder
	err := deployScriptTmpl.Execute(&b, struct {
		ImageName  string
		Port       int
		Registry   string
		RunCommand string
	}{
		ImageName:  imageName,
		Port:       port,
		RunCommand: DockerRunCommand(imageName, port),
	})
	if err != nil {
		return "", fmt.Errorf("snippet: render deploy script: %w", err)
	}
	return b.String(), nil
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(sprig.FuncMap()).Parse(text))
}
