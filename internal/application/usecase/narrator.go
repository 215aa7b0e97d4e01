package usecase

import (
	"errors"
	"strings"
	"sync"
)

// Voice holds speech parameters.
type Voice struct {
	Rate  float64
	Pitch float64
}

// ErrSpeechUnavailable is returned when no synthesizer is configured.
var ErrSpeechUnavailable = errors.New("speech is not available")

// DefaultVoice is the normal rate and pitch.
var DefaultVoice = Voice{Rate: 1.0, Pitch: 1.0}

// Playback is one running utterance.
type Playback interface {
	// Wait blocks until the utterance ends or fails.
	Wait() error
	// Stop cancels the utterance synchronously.
	Stop()
}

// Synthesizer starts utterances.
type Synthesizer interface {
	Start(text string, voice Voice) (Playback, error)
}

// Narrator reads article summaries aloud, keeping at most one active utterance.
type Narrator struct {
	Synth Synthesizer
	Voice Voice

	mu         sync.Mutex
	current    Playback
	speaking   bool
	generation int
}

// NewNarrator constructs a Narrator.
func NewNarrator(synth Synthesizer, voice Voice) *Narrator {
	return new(Narrator{Synth: synth, Voice: voice})
}

// Utterance is a started readout.
type Utterance struct {
	n        *Narrator
	gen      int
	playback Playback
}

// Enabled reports whether a synthesizer is configured.
func (n *Narrator) Enabled() bool {
	return n != nil && n.Synth != nil
}

// Speaking reports whether an utterance is active.
func (n *Narrator) Speaking() bool {
	if n == nil {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speaking
}

// Toggle stops the active readout and returns nil, or starts reading text.
func (n *Narrator) Toggle(text string) (*Utterance, error) {
	if n.Speaking() {
		n.Stop()
		return nil, nil
	}
	return n.Start(text)
}

// Start stops any prior readout and begins a new one.
func (n *Narrator) Start(text string) (*Utterance, error) {
	if !n.Enabled() {
		return nil, ErrSpeechUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("nothing to read")
	}
	n.Stop()

	n.mu.Lock()
	defer n.mu.Unlock()
	playback, err := n.Synth.Start(text, n.Voice)
	if err != nil {
		return nil, err
	}
	n.generation++
	n.current = playback
	n.speaking = true
	return &Utterance{n: n, gen: n.generation, playback: playback}, nil
}

// Stop cancels the active readout, if any.
func (n *Narrator) Stop() {
	if n == nil {
		return
	}
	n.mu.Lock()
	current := n.current
	n.current = nil
	n.speaking = false
	n.generation++
	n.mu.Unlock()

	if current != nil {
		current.Stop()
	}
}

// Wait blocks until the utterance ends. The speaking flag is cleared on end or error
// unless another utterance has started since.
func (u *Utterance) Wait() error {
	err := u.playback.Wait()
	u.n.mu.Lock()
	defer u.n.mu.Unlock()
	if u.n.generation != u.gen {
		return nil
	}
	u.n.current = nil
	u.n.speaking = false
	return err
}
