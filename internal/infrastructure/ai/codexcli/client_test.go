package codexcli

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tesso57/headlines/internal/application/usecase"
)

func TestClient_SendTextPrompt(t *testing.T) {
	var gotCommand string
	var gotArgs []string
	var gotInput string
	var gotDeadline bool

	client := NewClientWithRunner(Config{
		Command:         "codex-bin",
		Model:           "gpt-5",
		ReasoningEffort: "medium",
		Verbosity:       "low",
		Sandbox:         "read-only",
		Timeout:         5 * time.Second,
	}, func(ctx context.Context, command string, args []string, stdin string) (string, string, error) {
		gotCommand = command
		gotArgs = append([]string(nil), args...)
		gotInput = stdin
		_, gotDeadline = ctx.Deadline()
		return `[{"title":"A"}]`, "", nil
	})

	got, err := client.SendTextPrompt(context.Background(), usecase.TextRequest{Prompt: "news please", WebGrounding: true})
	if err != nil {
		t.Fatalf("SendTextPrompt() error = %v", err)
	}
	if got.Text != `[{"title":"A"}]` {
		t.Fatalf("text = %q", got.Text)
	}
	if len(got.Citations) != 0 {
		t.Fatalf("citations = %#v, want none", got.Citations)
	}
	if gotCommand != "codex-bin" {
		t.Fatalf("command = %q, want %q", gotCommand, "codex-bin")
	}
	if gotInput != "news please" {
		t.Fatalf("stdin = %q, want %q", gotInput, "news please")
	}
	if !gotDeadline {
		t.Fatal("runner context has no deadline")
	}

	if !containsArgPair(gotArgs, "-m", "gpt-5") {
		t.Fatalf("args missing model: %#v", gotArgs)
	}
	if !containsArgPair(gotArgs, "--sandbox", "read-only") {
		t.Fatalf("args missing sandbox: %#v", gotArgs)
	}
	if !containsArgPair(gotArgs, "-c", `web_search="live"`) {
		t.Fatalf("args missing web_search: %#v", gotArgs)
	}
	if !containsArgPair(gotArgs, "-c", `model_reasoning_effort="medium"`) {
		t.Fatalf("args missing reasoning effort: %#v", gotArgs)
	}
	if !containsArgPair(gotArgs, "-c", `model_verbosity="low"`) {
		t.Fatalf("args missing verbosity: %#v", gotArgs)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "-" {
		t.Fatalf("last arg should be '-', got %#v", gotArgs)
	}
}

func TestClient_NoWebSearchWithoutGrounding(t *testing.T) {
	var gotArgs []string
	client := NewClientWithRunner(Config{}, func(_ context.Context, _ string, args []string, _ string) (string, string, error) {
		gotArgs = args
		return "", "", nil
	})

	if _, err := client.SendTextPrompt(context.Background(), usecase.TextRequest{Prompt: "x"}); err != nil {
		t.Fatal(err)
	}
	if slices.Contains(gotArgs, `web_search="live"`) {
		t.Fatalf("unexpected web_search arg: %#v", gotArgs)
	}
	if !containsArgPair(gotArgs, "--sandbox", defaultSandbox) {
		t.Fatalf("args missing default sandbox: %#v", gotArgs)
	}
}

func TestClient_SendTextPromptErrors(t *testing.T) {
	client := NewClientWithRunner(Config{}, func(_ context.Context, _ string, _ []string, _ string) (string, string, error) {
		return "", "auth required", errors.New("exit status 1")
	})

	_, err := client.SendTextPrompt(context.Background(), usecase.TextRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "auth required") {
		t.Fatalf("error = %v, expected stderr in message", err)
	}
}

func TestClient_EmptyPrompt(t *testing.T) {
	client := NewClientWithRunner(Config{}, nil)
	if _, err := client.SendTextPrompt(context.Background(), usecase.TextRequest{}); err == nil {
		t.Fatal("expected empty prompt error")
	}
}

func containsArgPair(args []string, key, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == key && args[i+1] == value {
			return true
		}
	}
	return false
}
