package speech

import (
	"strings"
	"sync"
	"time"
)

// MockEngine simulates speech without audio. The auto-completing variant
// backs the "mock" engine type; the manual variant lets tests drive
// completion and error signals deterministically.
type MockEngine struct {
	mu      sync.Mutex
	seq     uint64
	current *Request
	timer   *time.Timer
	delay   time.Duration // 0 means manual: signals fire only on demand

	spoken  []string
	cancels int
	voices  []Voice

	// Leaky keeps the in-flight request deliverable after Cancel,
	// emulating engines whose cancellation does not reliably suppress a
	// pending completion signal.
	Leaky bool
}

// NewMockEngine returns an engine that pretends to speak each utterance for
// a duration proportional to its word count.
func NewMockEngine() *MockEngine {
	m := NewManualEngine()
	m.delay = 300 * time.Millisecond
	return m
}

// NewManualEngine returns an engine whose utterances never complete until
// FinishCurrent or FailCurrent is called.
func NewManualEngine() *MockEngine {
	return &MockEngine{
		voices: []Voice{
			{ID: "mock-voice", Name: "Mock Voice", Language: "en-US"},
		},
	}
}

func (m *MockEngine) Speak(req Request) error {
	m.mu.Lock()
	m.seq++
	id := m.seq
	r := req
	m.current = &r
	m.spoken = append(m.spoken, req.Text)

	if m.delay > 0 {
		words := len(strings.Fields(req.Text))
		d := m.delay + time.Duration(words)*20*time.Millisecond
		m.timer = time.AfterFunc(d, func() {
			m.mu.Lock()
			if id != m.seq || m.current == nil {
				m.mu.Unlock()
				return
			}
			done := *m.current
			m.current = nil
			m.mu.Unlock()

			if done.OnEnd != nil {
				done.OnEnd()
			}
		})
	}
	m.mu.Unlock()

	if req.OnStart != nil {
		req.OnStart()
	}
	return nil
}

func (m *MockEngine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.cancels++
	if !m.Leaky {
		m.current = nil
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *MockEngine) Voices() ([]Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Voice(nil), m.voices...), nil
}

// FinishCurrent fires the completion signal for the in-flight utterance.
// Returns false when nothing is in flight.
func (m *MockEngine) FinishCurrent() bool {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return false
	}
	done := *m.current
	m.current = nil
	m.mu.Unlock()

	if done.OnEnd != nil {
		done.OnEnd()
	}
	return true
}

// FailCurrent fires the error signal for the in-flight utterance.
func (m *MockEngine) FailCurrent(err error) bool {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return false
	}
	done := *m.current
	m.current = nil
	m.mu.Unlock()

	if done.OnError != nil {
		done.OnError(err)
	}
	return true
}

// Speaking reports the text of the in-flight utterance, if any.
func (m *MockEngine) Speaking() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return "", false
	}
	return m.current.Text, true
}

// InFlight reports how many utterances are outstanding (0 or 1).
func (m *MockEngine) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return 0
	}
	return 1
}

// Spoken returns every utterance text submitted so far, in order.
func (m *MockEngine) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}

// Cancels returns how many times Cancel has been called.
func (m *MockEngine) Cancels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancels
}

// SetVoices replaces the reported voice list, emulating engines that
// populate theirs late.
func (m *MockEngine) SetVoices(voices []Voice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = append([]Voice(nil), voices...)
}
