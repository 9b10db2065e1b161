package speech

// Voice describes one voice reported by a speech engine.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Request is a single utterance handed to an engine. Exactly one of OnEnd or
// OnError fires per request unless Cancel is called first, in which case
// neither does. Callbacks may arrive on any goroutine.
type Request struct {
	Text   string
	Voice  string
	Rate   float64 // speed multiplier, typically 0.5-2.0
	Pitch  float64 // pitch multiplier
	Volume float64 // 0.0-1.0

	OnStart func()
	OnEnd   func()
	OnError func(error)
}

// Engine is the text-to-speech capability consumed by the playback
// controller. Implementations speak asynchronously: Speak returns once the
// utterance has been submitted, and signals completion through the request
// callbacks. At most one utterance is in flight per engine; callers issue
// Cancel before a new Speak when one may still be pending.
type Engine interface {
	// Speak submits one utterance. A non-nil error means the request was
	// never started and no callback will fire.
	Speak(req Request) error

	// Cancel stops any in-flight utterance and suppresses its pending
	// callbacks. Safe to call when nothing is playing.
	Cancel()

	// Voices lists the voices currently available. Engines may report an
	// empty list early in their lifetime; callers should re-query rather
	// than cache.
	Voices() ([]Voice, error)
}
