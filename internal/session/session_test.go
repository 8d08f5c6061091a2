package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/olm-ai/olm/pkg/models"
)

func testConversation() []models.Message {
	return []models.Message{
		{Role: models.RoleUser, Content: "hello", Timestamp: time.Now()},
		{Role: models.RoleAssistant, Content: "hi", Timestamp: time.Now()},
	}
}

func TestSaveAndLoad(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	name := Filename()

	path, err := m.Save(name, "test-model", testConversation())
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected session file at %v: %v", path, err)
	}

	got, err := m.Load(name)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	testboil.FailTestIfDiff(t, got[0].Content, "hello")
	testboil.FailTestIfDiff(t, got[1].Role, models.RoleAssistant)
}

func TestSave_keepsIDOnResave(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	name := "session-test.json"

	path, err := m.Save(name, "test-model", testConversation())
	if err != nil {
		t.Fatal(err)
	}
	firstID := readSessionID(t, path)
	if firstID == "" {
		t.Fatal("expected a session ID to be assigned")
	}

	if _, err := m.Save(name, "test-model", testConversation()); err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, readSessionID(t, path), firstID)
}

func readSessionID(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var sf sessionFile
	if err := json.Unmarshal(b, &sf); err != nil {
		t.Fatal(err)
	}
	return sf.ID
}

func TestLoad_legacyBareArray(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	legacy := `[{"role": "user", "content": "old format"}]`
	if err := os.WriteFile(filepath.Join(dir, "legacy.json"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := m.Load("legacy.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Content != "old format" {
		t.Errorf("unexpected conversation: %+v", got)
	}
}

func TestLoad_missingFile(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.Load("nope.json")
	if err == nil {
		t.Fatal("expected error for missing session")
	}
	testboil.AssertStringContains(t, err.Error(), "failed to load session")
}

func TestList(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Save("session-a.json", "model-a", testConversation()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Save("session-b.json", "model-b", testConversation()); err != nil {
		t.Fatal(err)
	}

	infos, err := m.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(infos))
	}
	// Most recent first.
	testboil.FailTestIfDiff(t, infos[0].Name, "session-b.json")
	testboil.FailTestIfDiff(t, infos[0].Model, "model-b")
	testboil.FailTestIfDiff(t, infos[0].Messages, 2)
}

func TestFilename(t *testing.T) {
	name := Filename()
	if !strings.HasPrefix(name, "session-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected session filename: %v", name)
	}
}
