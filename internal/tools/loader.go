package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/olm-ai/olm/pkg/models"
)

// descriptor is the on-disk format for pluggable tools: static metadata plus
// a shell command template where '{{param}}' placeholders are substituted
// with the call's arguments.
type descriptor struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Parameters  *models.InputSchema `json:"parameters"`
	Command     string              `json:"command"`
}

// CommandTool is a tool defined by a descriptor file rather than Go code.
type CommandTool struct {
	spec    models.Specification
	command string
}

const commandToolTimeout = 10 * time.Second

func (c CommandTool) Call(input models.Input) (string, error) {
	cmdLine := c.command
	for key, val := range input {
		cmdLine = strings.ReplaceAll(cmdLine, "{{"+key+"}}", fmt.Sprintf("%v", val))
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandToolTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdLine)
	output, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return "", fmt.Errorf("command timed out after %v", commandToolTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("command failed: %w, output: %v", err, string(output))
	}
	return string(output), nil
}

func (c CommandTool) Specification() models.Specification {
	return c.spec
}

// LoadDir scans dir for .json tool descriptors and registers each one.
// Individually broken descriptors are logged and skipped, they never abort
// the load. A missing directory is not an error.
func (r *Registry) LoadDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintWarn(fmt.Sprintf("tool directory '%v' could not be read: %v\n", dir, err))
		}
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := r.loadDescriptor(path); err != nil {
			ancli.PrintWarn(fmt.Sprintf("failed to load tool descriptor '%v': %v\n", path, err))
		}
	}
}

func (r *Registry) loadDescriptor(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	var d descriptor
	if err := json.Unmarshal(b, &d); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.Command == "" {
		return fmt.Errorf("descriptor '%v' has no command", d.Name)
	}
	r.Register(CommandTool{
		spec: models.Specification{
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Inputs:      d.Parameters,
		},
		command: d.Command,
	})
	return nil
}
