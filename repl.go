package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/olm-ai/olm/internal/conversation"
	"github.com/olm-ai/olm/internal/llm"
	"github.com/olm-ai/olm/internal/session"
	"github.com/olm-ai/olm/internal/tools"
)

// chatAgent is the per-turn surface the REPL needs, satisfied by
// agent.Agent.
type chatAgent interface {
	ProcessMessage(ctx context.Context, userInput string) string
}

type repl struct {
	agent       chatAgent
	client      *llm.Client
	registry    *tools.Registry
	conv        *conversation.Manager
	sessions    *session.Manager
	sessionName string
}

func newREPL(a chatAgent, client *llm.Client, registry *tools.Registry, conv *conversation.Manager, sessions *session.Manager, sessionName string) *repl {
	return &repl{
		agent:       a,
		client:      client,
		registry:    registry,
		conv:        conv,
		sessions:    sessions,
		sessionName: sessionName,
	}
}

// run reads user input until exit or EOF, handing each line to the agent.
// The session is saved after every completed turn, so a killed process
// loses at most the turn in flight.
func (r *repl) run(ctx context.Context) error {
	ancli.Okf("olm ready, model: '%v', tools: %v. Type /help for commands.\n",
		r.client.Model(), r.registry.Len())
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%v(%v): ", ancli.ColoredMessage(ancli.CYAN, "you"), "'exit' or 'quit' to quit")
		userInput, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read user input: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(userInput)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/"):
			r.command(ctx, line)
			continue
		}

		r.turn(ctx, line)
	}
}

// turn runs one agent turn and prints the reply with how long it took.
func (r *repl) turn(ctx context.Context, line string) {
	start := time.Now()
	reply := r.agent.ProcessMessage(ctx, line)
	elapsed := time.Since(start).Round(10 * time.Millisecond)
	fmt.Printf("%v (%v): %v\n", ancli.ColoredMessage(ancli.BLUE, r.client.Model()), elapsed, reply)
	r.save()
}

func (r *repl) command(ctx context.Context, line string) {
	switch line {
	case "/tools":
		r.printTools()
	case "/sessions":
		r.printSessions()
	case "/health":
		r.printHealth(ctx)
	case "/clear":
		r.conv.Clear()
		ancli.PrintOK("conversation cleared\n")
	case "/help":
		fmt.Print(usage)
	default:
		ancli.PrintWarn(fmt.Sprintf("unknown command: '%v', see /help\n", line))
	}
}

func (r *repl) printTools() {
	categories := r.registry.ByCategory()
	ancli.Okf("registered tools: %v\n", r.registry.Len())
	for category, specs := range categories {
		fmt.Printf("  %v:\n", category)
		for _, spec := range specs {
			fmt.Printf("    - %v: %v\n", spec.Name, spec.Description)
		}
	}
}

// maxSessionList bounds the /sessions listing to the most recent entries.
const maxSessionList = 10

func (r *repl) printSessions() {
	infos, err := r.sessions.List()
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to list sessions: %v\n", err))
		return
	}
	ancli.Okf("found %v session(s):\n", len(infos))
	shown := infos
	if len(shown) > maxSessionList {
		shown = shown[:maxSessionList]
	}
	for _, info := range shown {
		fmt.Printf("  %v - %v message(s), model: %v\n", info.Name, info.Messages, info.Model)
	}
	if len(infos) > maxSessionList {
		fmt.Printf("  ...and %v more\n", len(infos)-maxSessionList)
	}
}

// printHealth checks service reachability and whether the configured model
// is pulled.
func (r *repl) printHealth(ctx context.Context) {
	if !r.client.HealthCheck(ctx) {
		ancli.PrintErr("service is not reachable, is ollama running?\n")
		return
	}
	ancli.PrintOK("service is reachable\n")
	names, err := r.client.ListModels(ctx)
	if err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to list models: %v\n", err))
		return
	}
	if slices.Contains(names, r.client.Model()) {
		ancli.Okf("model '%v' is available\n", r.client.Model())
		return
	}
	ancli.PrintWarn(fmt.Sprintf("model '%v' is not pulled, available: %v\n",
		r.client.Model(), strings.Join(names, ", ")))
}

func (r *repl) save() {
	if r.conv.Len() == 0 {
		return
	}
	if _, err := r.sessions.Save(r.sessionName, r.client.Model(), r.conv.History()); err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to save session: %v\n", err))
	}
}
