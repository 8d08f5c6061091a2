package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/olm-ai/olm/internal/agent"
	"github.com/olm-ai/olm/internal/config"
	"github.com/olm-ai/olm/internal/conversation"
	"github.com/olm-ai/olm/internal/llm"
	"github.com/olm-ai/olm/internal/session"
	"github.com/olm-ai/olm/internal/tools"
)

const usage = `olm - (o)llama (l)ocal (m)achine agent

Prerequisites:
  - A running ollama service, see https://ollama.com
  - A pulled model which supports tool calling, for example: 'ollama pull llama3.1:8b'
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: olm [flags]

Flags:
  -resume string    Resume the conversation from the given session file.
  -model string     Override the chat model from the config file.
  -url string       Override the ollama chat endpoint from the config file.
  -version bool     Print the version and exit.

Environment:
  OLLAMA_URL, OLLAMA_MODEL, OLLAMA_TIMEOUT, MAX_HISTORY, MAX_TOOL_CALLS,
  SESSIONS_DIR, TOOL_DIR override the corresponding config file fields.

Once running, type your message and press enter. Special commands:
  /tools       List the registered tools
  /sessions    List the most recent stored sessions
  /health      Check service reachability and model availability
  /clear       Clear the current conversation
  /help        Display this help message
  /exit        Save the session and quit (also: exit, quit)
`

var version = "dev"

func main() {
	ancli.SetupSlog()
	resumeFlag := flag.String("resume", "", "session file to resume")
	modelFlag := flag.String("model", "", "override the chat model")
	urlFlag := flag.String("url", "", "override the ollama chat endpoint")
	versionFlag := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() { fmt.Print(usage) }
	flag.Parse()

	if *versionFlag {
		fmt.Printf("olm version: %v\n", version)
		os.Exit(0)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		ancli.Errf("failed to find home directory: %v\n", err)
		os.Exit(1)
	}
	conf, err := config.Load(home)
	if err != nil {
		ancli.Errf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *modelFlag != "" {
		conf.Model = *modelFlag
	}
	if *urlFlag != "" {
		conf.OllamaURL = *urlFlag
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { shutdown.Monitor(cancel) }()

	client := llm.New(conf.OllamaURL, conf.Model, conf.Timeout())
	if !client.HealthCheck(ctx) {
		ancli.PrintErr(fmt.Sprintf("cannot reach ollama at: '%v', is the service running?\n", conf.OllamaURL))
		os.Exit(1)
	}

	tools.Init(tools.Default, client.Generate)
	tools.Default.LoadDir(conf.ToolDirPath(home))

	sessions, err := session.NewManager(conf.SessionsPath(home))
	if err != nil {
		ancli.Errf("failed to setup sessions: %v\n", err)
		os.Exit(1)
	}

	conv := conversation.NewManager(conf.MaxHistory)
	sessionName := session.Filename()
	if *resumeFlag != "" {
		history, err := sessions.Load(*resumeFlag)
		if err != nil {
			ancli.Errf("failed to resume session: %v\n", err)
			os.Exit(1)
		}
		conv.Load(history)
		sessionName = *resumeFlag
		ancli.Okf("resumed session '%v' with %v message(s)\n", *resumeFlag, len(history))
	}

	a := agent.New(client, tools.Default, conv, conf.MaxToolCalls)
	r := newREPL(a, client, tools.Default, conv, sessions, sessionName)
	if err := r.run(ctx); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		os.Exit(1)
	}
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
}
