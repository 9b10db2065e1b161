// Continuous read-aloud playback over a chunked piece of content.
//
// The player owns a cursor into the chunk sequence and drives one speech
// request at a time, advancing on each completion or error signal. Pause has
// no mid-utterance resume underneath it, so a paused chunk is replayed from
// its start. Every signal carries the request id it belongs to; signals from
// cancelled requests are discarded.
package player

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"readaloud/internal/reader/chunk"
	"readaloud/internal/reader/speech"
)

// State is the playback state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Progress is a snapshot of playback for the host UI. Position is 1-based:
// 0 means not started, Total means finished.
type Progress struct {
	State     State
	Position  int
	Total     int
	Chunk     string // text of the chunk speaking or about to speak
	Fraction  float64
	Available bool // false when no speech engine exists
}

type Config struct {
	Voice    string
	Rate     float64
	Pitch    float64
	Volume   float64
	MaxLen   int           // chunk length bound, DefaultMaxLen when zero
	Gap      time.Duration // inter-chunk pause; zero advances synchronously
	OnChange func(Progress)
}

// Player is the playback controller. All methods are safe for concurrent
// use; engine signals arriving on other goroutines are serialized through
// the same lock as user transitions.
type Player struct {
	mu     sync.Mutex
	engine speech.Engine
	log    *logrus.Entry

	chunks []string
	cursor int
	state  State

	voice  string
	rate   float64
	pitch  float64
	volume float64

	maxLen   int
	gap      time.Duration
	reqID    string // in-flight request, "" when none
	timer    *time.Timer
	onChange func(Progress)
}

// New creates a player bound to the given engine. A nil engine means the
// environment has no speech capability: the player stays constructed but
// every playback operation is a no-op and snapshots report Available=false.
func New(engine speech.Engine, cfg Config) *Player {
	if cfg.Rate == 0 {
		cfg.Rate = 1.0
	}
	if cfg.Pitch == 0 {
		cfg.Pitch = 1.0
	}
	if cfg.Volume == 0 {
		cfg.Volume = 1.0
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = chunk.DefaultMaxLen
	}

	return &Player{
		engine:   engine,
		log:      logrus.WithField("component", "player"),
		state:    StateIdle,
		voice:    cfg.Voice,
		rate:     cfg.Rate,
		pitch:    cfg.Pitch,
		volume:   cfg.Volume,
		maxLen:   cfg.MaxLen,
		gap:      cfg.Gap,
		onChange: cfg.OnChange,
	}
}

// Available reports whether a speech engine is present.
func (p *Player) Available() bool {
	return p.engine != nil
}

// SetContent replaces the content being read. Chunks and cursor are rebuilt
// from scratch and playback returns to idle; voice parameters persist.
func (p *Player) SetContent(content string) {
	p.mu.Lock()
	p.cancelLocked()
	p.chunks = chunk.Split(content, p.maxLen)
	p.cursor = 0
	p.state = StateIdle
	p.mu.Unlock()
	p.notify()
}

// Play starts or resumes playback. From idle or finished it starts at the
// beginning; from paused it replays the interrupted chunk from its start.
// No-op with no chunks, no engine, or while already playing.
func (p *Player) Play() {
	p.mu.Lock()
	if p.engine == nil || len(p.chunks) == 0 || p.state == StatePlaying {
		p.mu.Unlock()
		return
	}
	if p.state == StateFinished || p.cursor >= len(p.chunks) {
		p.cursor = 0
	}
	p.state = StatePlaying
	p.speakLocked()
	p.mu.Unlock()
	p.notify()
}

// Resume is Play, named for hosts pairing it with Pause.
func (p *Player) Resume() {
	p.Play()
}

// Pause interrupts the current chunk. The chunk gets no completion credit
// and will be re-spoken in full on resume.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return
	}
	p.cancelLocked()
	p.state = StatePaused
	p.mu.Unlock()
	p.notify()
}

// Stop cancels playback and resets the cursor to the beginning.
func (p *Player) Stop() {
	p.mu.Lock()
	p.cancelLocked()
	p.cursor = 0
	p.state = StateIdle
	p.mu.Unlock()
	p.notify()
}

// Restart plays from the first chunk regardless of current state.
func (p *Player) Restart() {
	p.mu.Lock()
	if p.engine == nil || len(p.chunks) == 0 {
		p.mu.Unlock()
		return
	}
	p.cancelLocked()
	p.cursor = 0
	p.state = StatePlaying
	p.speakLocked()
	p.mu.Unlock()
	p.notify()
}

// SkipNext advances to the next chunk. Speaking resumes immediately when
// playing; otherwise only the position moves. No-op on the last chunk.
func (p *Player) SkipNext() {
	p.mu.Lock()
	if p.cursor >= len(p.chunks)-1 {
		p.mu.Unlock()
		return
	}
	p.cancelLocked()
	p.cursor++
	if p.state == StatePlaying {
		p.speakLocked()
	}
	p.mu.Unlock()
	p.notify()
}

// SkipPrevious moves back one chunk. No-op at the first chunk.
func (p *Player) SkipPrevious() {
	p.mu.Lock()
	if p.cursor <= 0 {
		p.mu.Unlock()
		return
	}
	p.cancelLocked()
	p.cursor--
	if p.state == StatePlaying {
		p.speakLocked()
	}
	p.mu.Unlock()
	p.notify()
}

// SetRate changes the speed multiplier. A playing chunk restarts from its
// beginning with the new rate.
func (p *Player) SetRate(rate float64) {
	p.setParam(func() { p.rate = rate })
}

// SetPitch changes the pitch multiplier, restarting the current chunk when
// playing.
func (p *Player) SetPitch(pitch float64) {
	p.setParam(func() { p.pitch = pitch })
}

// SetVoice changes the voice, restarting the current chunk when playing.
func (p *Player) SetVoice(id string) {
	p.setParam(func() { p.voice = id })
}

// Rate returns the current speed multiplier.
func (p *Player) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

// Voices lists the voices the engine currently reports.
func (p *Player) Voices() ([]speech.Voice, error) {
	if p.engine == nil {
		return nil, speech.ErrUnavailable
	}
	return p.engine.Voices()
}

// Progress returns a snapshot of playback state for the host UI.
func (p *Player) Progress() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progressLocked()
}

func (p *Player) setParam(apply func()) {
	p.mu.Lock()
	apply()
	if p.state == StatePlaying {
		p.cancelLocked()
		p.speakLocked()
	}
	p.mu.Unlock()
	p.notify()
}

// speakLocked issues the speech request for the chunk at the cursor. The
// request is tagged so that signals from superseded requests are ignored.
func (p *Player) speakLocked() {
	id := uuid.NewString()
	p.reqID = id

	req := speech.Request{
		Text:    p.chunks[p.cursor],
		Voice:   p.voice,
		Rate:    p.rate,
		Pitch:   p.pitch,
		Volume:  p.volume,
		OnEnd:   func() { p.chunkDone(id, nil) },
		OnError: func(err error) { p.chunkDone(id, err) },
	}

	if err := p.engine.Speak(req); err != nil {
		// A chunk the engine refuses outright is skipped like one that
		// errored mid-utterance.
		p.log.WithError(err).WithField("chunk", p.cursor).Warn("speech request rejected")
		go p.chunkDone(id, nil)
	}
}

// chunkDone is the continuation for completion and error signals. Errors
// advance exactly like completions so one bad chunk never halts the read.
func (p *Player) chunkDone(id string, err error) {
	p.mu.Lock()
	if p.state != StatePlaying || id != p.reqID {
		// Stale signal from a cancelled or superseded request.
		p.mu.Unlock()
		return
	}
	p.reqID = ""

	if err != nil {
		p.log.WithError(err).WithField("chunk", p.cursor).Warn("utterance failed, skipping chunk")
	}

	p.cursor++
	if p.cursor >= len(p.chunks) {
		p.state = StateFinished
		p.mu.Unlock()
		p.notify()
		return
	}

	if p.gap > 0 {
		// Natural pause between segments.
		p.timer = time.AfterFunc(p.gap, func() {
			p.mu.Lock()
			if p.state == StatePlaying && p.reqID == "" {
				p.speakLocked()
			}
			p.mu.Unlock()
		})
	} else {
		p.speakLocked()
	}
	p.mu.Unlock()
	p.notify()
}

// cancelLocked stops the pending gap timer and cancels any in-flight speech
// request before a transition issues a new one.
func (p *Player) cancelLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.reqID = ""
	if p.engine != nil {
		p.engine.Cancel()
	}
}

func (p *Player) progressLocked() Progress {
	total := len(p.chunks)

	// Idle reports 0 only before anything is queued up. A skip while idle
	// moves the cursor, and the reported position follows it so that it
	// stays consistent with Chunk.
	position := 0
	switch {
	case p.state == StateFinished:
		position = total
	case p.state == StateIdle && p.cursor == 0:
		position = 0
	default:
		position = p.cursor + 1
	}

	text := ""
	if p.cursor < total && p.state != StateFinished {
		text = p.chunks[p.cursor]
	}

	fraction := 0.0
	if total > 0 {
		fraction = float64(position) / float64(total)
	}

	return Progress{
		State:     p.state,
		Position:  position,
		Total:     total,
		Chunk:     text,
		Fraction:  fraction,
		Available: p.engine != nil,
	}
}

func (p *Player) notify() {
	if p.onChange == nil {
		return
	}
	p.mu.Lock()
	snapshot := p.progressLocked()
	p.mu.Unlock()
	p.onChange(snapshot)
}
