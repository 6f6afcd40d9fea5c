package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	arc, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer arc.Close()

	files := make(map[string]string)
	for _, f := range arc.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
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
		t.Fatalf("Prepare() error: %v", err)
	}

	logFile := filepath.Join(dir, "run.log")
	if err := os.WriteFile(logFile, []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}
	sheet := filepath.Join(dir, "sheet.css")
	if err := os.WriteFile(sheet, []byte(".a { color: red; }"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("final.log", logFile)
	if err := r.StoreCopy("sheet.css", sheet); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if err := r.StoreCopy("sheet.css", sheet); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	r.StoreData("output.yaml", []byte("a: {}\n"))
	r.Store("missing.log", filepath.Join(dir, "missing.log"))

	// stored files are read when report is closed, copies are taken now
	if err := os.WriteFile(logFile, []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sheet, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "second" {
		t.Errorf("unexpected log content %q", files["final.log"])
	}
	if files["sheet.css"] != ".a { color: red; }" {
		t.Errorf("unexpected copy content %q", files["sheet.css"])
	}
	if files["output.yaml"] != "a: {}\n" {
		t.Errorf("unexpected data content %q", files["output.yaml"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent files must be skipped")
	}

	var copies int
	for name := range files {
		if strings.HasPrefix(name, "sheet.css") {
			copies++
		}
	}
	if copies != 2 {
		t.Errorf("expected 2 versioned copies, got %d", copies)
	}
	if !strings.Contains(files["MANIFEST"], "output.yaml") {
		t.Errorf("manifest must list entries:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "a.log")
	r.Store("final.log", "a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overwrite")
		}
	}()
	r.Store("final.log", "b.log")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report has no name")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
