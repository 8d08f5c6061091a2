package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

type testConfig struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCreateFile_thenReadAndUnmarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	want := testConfig{Name: "olm", Count: 3}

	if err := CreateFile(path, &want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got testConfig
	if err := ReadAndUnmarshal(path, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, want)
}

func TestReadAndUnmarshal_missingFile(t *testing.T) {
	var got testConfig
	err := ReadAndUnmarshal(filepath.Join(t.TempDir(), "nope.json"), &got)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	testboil.AssertStringContains(t, err.Error(), "failed to find file")
}

func TestLoadConfigFromFile(t *testing.T) {
	home := t.TempDir()
	dflt := testConfig{Name: "default", Count: 1}

	got, err := LoadConfigFromFile(home, "testConf.json", &dflt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, dflt)
	if _, err := os.Stat(filepath.Join(home, ".olm", "testConf.json")); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoadConfigFromFile_padsNewFields(t *testing.T) {
	home := t.TempDir()
	confDir := filepath.Join(home, ".olm")
	if err := os.MkdirAll(confDir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	// An older config without the count field.
	if err := os.WriteFile(filepath.Join(confDir, "testConf.json"), []byte(`{"name": "kept"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	dflt := testConfig{Name: "default", Count: 7}

	got, err := LoadConfigFromFile(home, "testConf.json", &dflt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got.Name, "kept")
	testboil.FailTestIfDiff(t, got.Count, 7)

	var onDisk testConfig
	if err := ReadAndUnmarshal(filepath.Join(confDir, "testConf.json"), &onDisk); err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, onDisk.Count, 7)
}
