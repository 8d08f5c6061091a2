// Package config resolves runtime settings from the config file and the
// environment. Environment variables win over the file, the file wins over
// the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/olm-ai/olm/internal/utils"
)

type Config struct {
	OllamaURL      string `json:"ollama_url"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxHistory     int    `json:"max_history"`
	MaxToolCalls   int    `json:"max_tool_calls"`
	SessionsDir    string `json:"sessions_dir"`
	ToolDir        string `json:"tool_dir"`
}

func Default() Config {
	return Config{
		OllamaURL:      "http://localhost:11434/api/chat",
		Model:          "llama3.1:8b",
		TimeoutSeconds: 30,
		MaxHistory:     10,
		MaxToolCalls:   5,
		SessionsDir:    "sessions",
		ToolDir:        "plugins",
	}
}

// Timeout converts the configured seconds into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionsPath resolves the sessions directory. Relative paths are anchored
// in the config dotdir, absolute ones are used as-is.
func (c Config) SessionsPath(configHome string) string {
	if filepath.IsAbs(c.SessionsDir) {
		return c.SessionsDir
	}
	return filepath.Join(configHome, ".olm", c.SessionsDir)
}

// ToolDirPath resolves the extra-tool descriptor directory the same way.
func (c Config) ToolDirPath(configHome string) string {
	if filepath.IsAbs(c.ToolDir) {
		return c.ToolDir
	}
	return filepath.Join(configHome, ".olm", c.ToolDir)
}

// Load reads olmConf.json from the .olm dotdir under configHome, creating a
// default one on first run, then applies environment overrides.
func Load(configHome string) (Config, error) {
	dflt := Default()
	conf, err := utils.LoadConfigFromFile(configHome, "olmConf.json", &dflt)
	if err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}
	applyEnv(&conf)
	return conf, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Model = v
	}
	envInt("OLLAMA_TIMEOUT", &c.TimeoutSeconds)
	envInt("MAX_HISTORY", &c.MaxHistory)
	envInt("MAX_TOOL_CALLS", &c.MaxToolCalls)
	if v := os.Getenv("SESSIONS_DIR"); v != "" {
		c.SessionsDir = v
	}
	if v := os.Getenv("TOOL_DIR"); v != "" {
		c.ToolDir = v
	}
}

func envInt(key string, target *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		ancli.PrintWarn(fmt.Sprintf("ignoring invalid %v: '%v'\n", key, v))
		return
	}
	*target = parsed
}
