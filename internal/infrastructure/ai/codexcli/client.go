// Package codexcli provides a Codex CLI based text provider.
package codexcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tesso57/headlines/internal/application/usecase"
)

const (
	defaultCommand = "codex"
	defaultSandbox = "read-only"
	defaultTimeout = 90 * time.Second
)

// Config controls Codex CLI subprocess invocation.
type Config struct {
	Command         string
	Model           string
	ReasoningEffort string
	Verbosity       string
	Sandbox         string
	Timeout         time.Duration
}

// Runner executes Codex and returns stdout/stderr text.
type Runner func(ctx context.Context, command string, args []string, stdin string) (string, string, error)

// Client implements usecase.TextProvider by invoking Codex CLI as a subprocess.
type Client struct {
	config Config
	run    Runner
}

// NewClient creates a Codex CLI client.
func NewClient(cfg Config) Client {
	return NewClientWithRunner(cfg, nil)
}

// NewClientWithRunner creates a client with a custom runner for tests.
func NewClientWithRunner(cfg Config, runner Runner) Client {
	if runner == nil {
		runner = defaultRunner
	}
	return Client{
		config: normalizeConfig(cfg),
		run:    runner,
	}
}

// SendTextPrompt executes Codex and returns its raw output. Codex does not report
// grounding citations, so the response never carries any.
func (c Client) SendTextPrompt(ctx context.Context, req usecase.TextRequest) (usecase.TextResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return usecase.TextResponse{}, errors.New("prompt is empty")
	}

	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	stdout, stderr, err := c.run(runCtx, c.config.Command, c.args(req.WebGrounding), req.Prompt)
	if err != nil {
		reason := strings.TrimSpace(stderr)
		if reason == "" {
			reason = strings.TrimSpace(stdout)
		}
		if reason == "" {
			return usecase.TextResponse{}, fmt.Errorf("codex exec failed: %w", err)
		}
		return usecase.TextResponse{}, fmt.Errorf("codex exec failed: %w: %s", err, reason)
	}
	return usecase.TextResponse{Text: stdout}, nil
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	if strings.TrimSpace(normalized.Command) == "" {
		normalized.Command = defaultCommand
	}
	if strings.TrimSpace(normalized.Sandbox) == "" {
		normalized.Sandbox = defaultSandbox
	}
	if normalized.Timeout <= 0 {
		normalized.Timeout = defaultTimeout
	}
	return normalized
}

func (c Client) args(webSearch bool) []string {
	args := []string{
		"exec",
		"--skip-git-repo-check",
		"--sandbox", c.config.Sandbox,
		"--color", "never",
	}
	if strings.TrimSpace(c.config.Model) != "" {
		args = append(args, "-m", c.config.Model)
	}
	if webSearch {
		args = append(args, "-c", `web_search="live"`)
	}
	if strings.TrimSpace(c.config.ReasoningEffort) != "" {
		args = append(args, "-c", fmt.Sprintf("model_reasoning_effort=%q", c.config.ReasoningEffort))
	}
	if strings.TrimSpace(c.config.Verbosity) != "" {
		args = append(args, "-c", fmt.Sprintf("model_verbosity=%q", c.config.Verbosity))
	}
	return append(args, "-")
}

func defaultRunner(ctx context.Context, command string, args []string, stdin string) (string, string, error) {
	cmd := exec.CommandContext(ctx, command, args...) //nolint:gosec
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
