package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/olm-ai/olm/internal/conversation"
	"github.com/olm-ai/olm/internal/llm"
	"github.com/olm-ai/olm/internal/session"
	"github.com/olm-ai/olm/internal/tools"
	"github.com/olm-ai/olm/pkg/models"
)

type stubAgent struct {
	reply string
}

func (s stubAgent) ProcessMessage(ctx context.Context, userInput string) string {
	return s.reply
}

func newTestREPL(t *testing.T, client *llm.Client) *repl {
	t.Helper()
	sessions, err := session.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return newREPL(stubAgent{reply: "hi"}, client, tools.NewRegistry(),
		conversation.NewManager(10), sessions, "session-test.json")
}

func tagsClient(t *testing.T, modelNames []string) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type model struct {
			Name string `json:"name"`
		}
		listing := struct {
			Models []model `json:"models"`
		}{}
		for _, name := range modelNames {
			listing.Models = append(listing.Models, model{Name: name})
		}
		json.NewEncoder(w).Encode(listing)
	}))
	t.Cleanup(srv.Close)
	return llm.New(srv.URL+"/api/chat", "test-model", time.Second)
}

func captureStderr(t *testing.T, f func()) string {
	t.Helper()
	oldStderr := os.Stderr
	rp, wp, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = wp
	f()
	wp.Close()
	os.Stderr = oldStderr
	b, err := io.ReadAll(rp)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestPrintHealth_modelAvailable(t *testing.T) {
	r := newTestREPL(t, tagsClient(t, []string{"other:1b", "test-model"}))

	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		r.printHealth(context.Background())
	})

	testboil.AssertStringContains(t, stdout, "service is reachable")
	testboil.AssertStringContains(t, stdout, "model 'test-model' is available")
}

func TestPrintHealth_modelMissing(t *testing.T) {
	r := newTestREPL(t, tagsClient(t, []string{"other:1b"}))

	var stdout string
	stderr := captureStderr(t, func() {
		stdout = testboil.CaptureStdout(t, func(t *testing.T) {
			r.printHealth(context.Background())
		})
	})
	out := stdout + stderr

	testboil.AssertStringContains(t, out, "model 'test-model' is not pulled")
	testboil.AssertStringContains(t, out, "other:1b")
}

func TestPrintHealth_unreachable(t *testing.T) {
	client := llm.New("http://127.0.0.1:1/api/chat", "test-model", time.Second)
	r := newTestREPL(t, client)

	var stdout string
	stderr := captureStderr(t, func() {
		stdout = testboil.CaptureStdout(t, func(t *testing.T) {
			r.printHealth(context.Background())
		})
	})

	testboil.AssertStringContains(t, stdout+stderr, "service is not reachable")
}

func TestPrintSessions_capsListing(t *testing.T) {
	r := newTestREPL(t, tagsClient(t, nil))
	conv := []models.Message{{Role: models.RoleUser, Content: "x"}}
	total := maxSessionList + 2
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("session-%03d.json", i)
		if _, err := r.sessions.Save(name, "test-model", conv); err != nil {
			t.Fatal(err)
		}
		// Distinct timestamps so the newest-first order is stable.
		time.Sleep(5 * time.Millisecond)
	}

	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		r.printSessions()
	})

	testboil.AssertStringContains(t, stdout, fmt.Sprintf("found %v session(s)", total))
	testboil.AssertStringContains(t, stdout, fmt.Sprintf("session-%03d.json", total-1))
	testboil.AssertStringContains(t, stdout, "...and 2 more")
	for _, tooOld := range []string{"session-000.json", "session-001.json"} {
		if strings.Contains(stdout, tooOld) {
			t.Errorf("expected %v to be cut from the listing", tooOld)
		}
	}
}

func TestTurn_printsReplyWithTiming(t *testing.T) {
	r := newTestREPL(t, tagsClient(t, nil))

	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		r.turn(context.Background(), "hello")
	})

	testboil.AssertStringContains(t, stdout, "test-model")
	testboil.AssertStringContains(t, stdout, "): hi")
	testboil.AssertStringContains(t, stdout, " (")
}
