package snippet

import (
	"strings"
	"testing"
)

func TestSamples_ContainRunURL(t *testing.T) {
	samples := Samples("https://x/y")
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	wantNames := []string{"Python", "JavaScript", "cURL"}
	for i, s := range samples {
		if s.Name != wantNames[i] {
			t.Errorf("sample %d name = %q, want %q", i, s.Name, wantNames[i])
		}
		if !strings.Contains(s.Code, "https://x/y/run") {
			t.Errorf("%s sample missing run URL:\n%s", s.Name, s.Code)
		}
		if !strings.Contains(s.Code, "What is machine learning?") {
			t.Errorf("%s sample missing example payload:\n%s", s.Name, s.Code)
		}
	}
}

func TestSamples_TrailingSlashURL(t *testing.T) {
	for _, s := range Samples("https://x/y/") {
		if strings.Contains(s.Code, "https://x/y//run") {
			t.Errorf("%s sample has doubled slash:\n%s", s.Name, s.Code)
		}
	}
}

func TestDockerRunCommand(t *testing.T) {
	got := DockerRunCommand("flow-abc", 9090)
	want := "docker run -d -p 9090:8000 --name flow-abc-container flow-abc"
	if got != want {
		t.Errorf("DockerRunCommand = %q, want %q", got, want)
	}
}

func TestDeployScript_RunAndTagLines(t *testing.T) {
	script, err := DeployScript("flow-abc", 9090)
	if err != nil {
		t.Fatalf("DeployScript: %v", err)
	}

	var runLine, tagLine string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(line, "docker run") {
			runLine = line
		}
		if strings.HasPrefix(line, "docker tag") {
			tagLine = line
		}
	}
	if runLine == "" || tagLine == "" {
		t.Fatalf("script missing docker run or docker tag line:\n%s", script)
	}
	for _, line := range []string{runLine, tagLine} {
		if !strings.Contains(line, "flow-abc") {
			t.Errorf("line missing image name: %q", line)
		}
		if !strings.Contains(line, "9090") {
			t.Errorf("line missing port: %q", line)
		}
	}
	if runLine != "docker run -d -p 9090:8000 --name flow-abc-container flow-abc" {
		t.Errorf("unexpected run line: %q", runLine)
	}
	if !strings.HasPrefix(script, "#!/bin/sh") {
		t.Error("script missing shebang")
	}
}

func TestDeployScript_Validation(t *testing.T) {
	if _, err := DeployScript("", 9090); err == nil {
		t.Error("expected error for empty image name")
	}
	if _, err := DeployScript("flow-abc", 0); err == nil {
		t.Error("expected error for non-positive port")
	}
}
