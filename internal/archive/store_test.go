package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SaveArchive(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := s.SaveArchive("abc123_fastapi_app.zip", []byte("PK\x03\x04"))
	if err != nil {
		t.Fatalf("SaveArchive: %v", err)
	}
	if path != filepath.Join(dir, "abc123_fastapi_app.zip") {
		t.Errorf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "PK\x03\x04" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestStore_SaveScriptIsExecutable(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := s.SaveScript("deploy-langflow.sh", "#!/bin/sh\necho ok\n")
	if err != nil {
		t.Fatalf("SaveScript: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("script not executable: %v", info.Mode())
	}
}

func TestStore_EnvFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DownloadsDirEnv, dir)

	s, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir = %q, want env override %q", s.Dir(), dir)
	}
}

func TestStore_RejectsUnsafeFilenames(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, name := range []string{"", "../escape.zip", "a/b.zip", `a\b.zip`, ".hidden"} {
		if _, err := s.SaveArchive(name, []byte("x")); err == nil {
			t.Errorf("expected rejection for %q", name)
		}
	}
}
