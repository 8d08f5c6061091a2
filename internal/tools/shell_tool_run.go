package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/olm-ai/olm/pkg/models"
)

type RunShellTool models.Specification

var RunShell = RunShellTool{
	Name:        "run_shell",
	Description: "Run a shell command and return its output",
	Category:    CategoryUtility,
	Inputs: SchemaFromParams([]Param{
		{
			Name:        "command",
			Description: "The shell command to execute",
		},
	}),
}

const runShellTimeout = 10 * time.Second

func (r RunShellTool) Call(input models.Input) (string, error) {
	command, err := input.String("command")
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), runShellTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if ctx.Err() != nil {
		return "", fmt.Errorf("command timed out after %v", runShellTimeout)
	}
	if runErr != nil {
		return "", fmt.Errorf("command failed: %w, stderr: %v", runErr, strings.TrimSpace(stderr.String()))
	}
	out := strings.TrimSpace(stdout.String())
	errOut := strings.TrimSpace(stderr.String())
	if errOut != "" {
		return fmt.Sprintf("[stderr]\n%v\n[stdout]\n%v", errOut, out), nil
	}
	return out, nil
}

func (r RunShellTool) Specification() models.Specification {
	return models.Specification(RunShell)
}
