// Package speech reads text aloud through a system speech command.
package speech

import (
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tesso57/headlines/internal/application/usecase"
)

const baseWordsPerMinute = 175

// Candidates lists the commands tried when none is configured, in order.
var Candidates = []string{"espeak-ng", "espeak", "say", "spd-say"}

// ErrNoSpeechCommand is returned when no speech command can be found.
var ErrNoSpeechCommand = errors.New("no speech command found")

// Process is a started speech subprocess.
type Process interface {
	Wait() error
	Kill() error
}

// Starter launches a speech subprocess.
type Starter func(command string, args []string) (Process, error)

// Command implements usecase.Synthesizer with a speech command.
type Command struct {
	Name  string
	start Starter
}

// New resolves the speech command. An empty name picks the first available candidate.
func New(name string) (*Command, error) {
	return NewWithLookup(name, exec.LookPath, startProcess)
}

// NewWithLookup is New with injectable lookup and process starter, for tests.
func NewWithLookup(name string, lookPath func(string) (string, error), start Starter) (*Command, error) {
	name = strings.TrimSpace(name)
	candidates := Candidates
	if name != "" {
		candidates = []string{name}
	}
	for _, candidate := range candidates {
		if path, err := lookPath(candidate); err == nil && path != "" {
			return &Command{Name: candidate, start: start}, nil
		}
	}
	if name != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoSpeechCommand, name)
	}
	return nil, ErrNoSpeechCommand
}

// Start launches the command for text and returns immediately.
func (c *Command) Start(text string, voice usecase.Voice) (usecase.Playback, error) {
	proc, err := c.start(c.Name, Args(c.Name, text, voice))
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", c.Name, err)
	}
	return newPlayback(proc), nil
}

// Args maps the voice onto the command's flags.
func Args(command, text string, voice usecase.Voice) []string {
	rate := voice.Rate
	if rate <= 0 {
		rate = 1
	}
	pitch := voice.Pitch
	if pitch <= 0 {
		pitch = 1
	}

	switch strings.TrimSuffix(filepath.Base(command), ".exe") {
	case "espeak-ng", "espeak":
		return []string{
			"-s", strconv.Itoa(int(math.Round(baseWordsPerMinute * rate))),
			"-p", strconv.Itoa(clamp(int(math.Round(50*pitch)), 0, 99)),
			"--", text,
		}
	case "say":
		return []string{"-r", strconv.Itoa(int(math.Round(baseWordsPerMinute * rate))), text}
	case "spd-say":
		return []string{
			"-w",
			"-r", strconv.Itoa(clamp(int(math.Round((rate-1)*100)), -100, 100)),
			"-p", strconv.Itoa(clamp(int(math.Round((pitch-1)*100)), -100, 100)),
			"--", text,
		}
	default:
		return []string{text}
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

type playback struct {
	proc    Process
	done    chan struct{}
	err     error
	stopped atomic.Bool
}

func newPlayback(proc Process) *playback {
	p := &playback{proc: proc, done: make(chan struct{})}
	go func() {
		p.err = proc.Wait()
		close(p.done)
	}()
	return p
}

// Wait blocks until the process exits. A stopped playback ends without error.
func (p *playback) Wait() error {
	<-p.done
	if p.stopped.Load() {
		return nil
	}
	return p.err
}

// Stop kills the process and waits for it to exit.
func (p *playback) Stop() {
	p.stopped.Store(true)
	_ = p.proc.Kill()
	<-p.done
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p execProcess) Wait() error { return p.cmd.Wait() }

func (p execProcess) Kill() error { return p.cmd.Process.Kill() }

func startProcess(command string, args []string) (Process, error) {
	cmd := exec.Command(command, args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return execProcess{cmd: cmd}, nil
}
