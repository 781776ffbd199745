package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.HasSuffix(r.Name(), "report.zip") {
		t.Errorf("Name() = %q", r.Name())
	}

	logFile := filepath.Join(dir, "run.log")
	if err := os.WriteFile(logFile, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	r.Store("final.log", logFile)
	r.Store("missing.log", filepath.Join(dir, "nope.log"))
	r.StoreData("recipe/a.yaml", []byte("selectors: []"))
	r.StoreData("recipe/a.yaml", []byte("again"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must be skipped")
	}
	if files["recipe/a.yaml"] != "selectors: []" {
		t.Errorf("recipe/a.yaml = %q", files["recipe/a.yaml"])
	}
	if len(files) != 4 {
		t.Errorf("archive has %d files, want 4 (MANIFEST, log, two data entries)", len(files))
	}
	if !strings.Contains(files["MANIFEST"], "final.log") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
	if _, err := uuid.Parse(r.ID()); err != nil {
		t.Errorf("ID() = %q is not uuid: %v", r.ID(), err)
	}
	if !strings.Contains(files["MANIFEST"], r.ID()) {
		t.Errorf("MANIFEST does not carry report id: %q", files["MANIFEST"])
	}
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if r.Name() != "" || r.ID() != "" {
		t.Error("Name() and ID() on nil report must be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("x", "/tmp/a")
	r.Store("x", "/tmp/a")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("x", "/tmp/b")
}
