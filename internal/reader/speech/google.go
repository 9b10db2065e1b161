// Google Cloud TTS engine with a local MP3 cache, played through beep.
package speech

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

type googleEngine struct {
	client   *texttospeech.Client
	ctx      context.Context
	cacheDir string

	mu       sync.Mutex
	seq      uint64
	streamer beep.StreamSeekCloser
}

func newGoogleEngine(cacheDir string) (*googleEngine, error) {
	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "readaloud-audio")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	return &googleEngine{
		client:   client,
		ctx:      ctx,
		cacheDir: cacheDir,
	}, nil
}

func (g *googleEngine) Speak(req Request) error {
	g.mu.Lock()
	g.seq++
	id := g.seq
	g.mu.Unlock()

	// Synthesis and playback both block, so the whole utterance runs off
	// the caller's goroutine and reports back through the callbacks.
	go g.speak(id, req)
	return nil
}

func (g *googleEngine) speak(id uint64, req Request) {
	path, err := g.synthesize(req)
	if err != nil {
		g.report(id, req, fmt.Errorf("synthesis failed: %w", err))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		g.report(id, req, fmt.Errorf("failed to open cached MP3 %s: %w", path, err))
		return
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		g.report(id, req, fmt.Errorf("failed to decode MP3 %s: %w", path, err))
		return
	}

	g.mu.Lock()
	if id != g.seq {
		// Cancelled while synthesizing.
		g.mu.Unlock()
		streamer.Close()
		return
	}
	g.streamer = streamer
	g.mu.Unlock()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		g.report(id, req, err)
		return
	}

	if req.OnStart != nil {
		req.OnStart()
	}

	// The callback runs on the speaker goroutine with beep's internal lock
	// held, so it must not touch g.mu or call back into the player. It only
	// signals; finishPlayback does the rest from its own goroutine.
	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	go g.finishPlayback(id, req, done)
}

// finishPlayback waits for the speaker to drain an utterance and fires OnEnd,
// unless the request was superseded in the meantime.
func (g *googleEngine) finishPlayback(id uint64, req Request, done <-chan struct{}) {
	<-done

	g.mu.Lock()
	stale := id != g.seq
	if !stale {
		g.streamer = nil
	}
	g.mu.Unlock()

	if !stale && req.OnEnd != nil {
		req.OnEnd()
	}
}

// report fires OnError unless the request has been cancelled in the interim.
func (g *googleEngine) report(id uint64, req Request, err error) {
	g.mu.Lock()
	stale := id != g.seq
	g.mu.Unlock()

	if stale {
		return
	}
	if req.OnError != nil {
		req.OnError(err)
	}
}

// synthesize returns the path of a cached MP3 for the request, generating it
// through the Cloud TTS API on a cache miss.
func (g *googleEngine) synthesize(req Request) (string, error) {
	key := md5Sum(fmt.Sprintf("%s|%s|%.2f|%.2f", req.Text, req.Voice, req.Rate, req.Pitch))
	path := filepath.Join(g.cacheDir, key[:16]+".mp3")

	if _, err := os.Stat(path); err == nil {
		logrus.WithField("file", path).Debug("Using cached audio")
		return path, nil
	}

	voiceName := req.Voice
	if voiceName == "" || voiceName == "default" {
		voiceName = "en-US-Neural2-C"
	}

	audioCfg := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_MP3,
	}
	// Chirp voices reject speakingRate/pitch, so leave them at defaults there.
	if !strings.Contains(strings.ToLower(voiceName), "chirp") {
		audioCfg.SpeakingRate = req.Rate
		audioCfg.Pitch = (req.Pitch - 1.0) * 10 // multiplier to semitones
	}

	resp, err := g.client.SynthesizeSpeech(g.ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageFromVoiceName(voiceName),
			Name:         voiceName,
		},
		AudioConfig: audioCfg,
	})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, resp.AudioContent, 0644); err != nil {
		return "", fmt.Errorf("failed to write MP3 to %s: %w", path, err)
	}

	logrus.WithField("file", path).Debug("Cached synthesized audio")
	return path, nil
}

func (g *googleEngine) Cancel() {
	g.mu.Lock()
	g.seq++ // invalidates pending synthesis and playback callbacks
	streamer := g.streamer
	g.streamer = nil
	g.mu.Unlock()

	// speaker.Clear takes beep's internal lock, which the speaker goroutine
	// holds while running end-of-stream callbacks, so it must not be called
	// while holding g.mu.
	if streamer != nil {
		speaker.Clear()
		streamer.Close()
	}
}

func (g *googleEngine) Voices() ([]Voice, error) {
	resp, err := g.client.ListVoices(g.ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, err
	}

	voices := make([]Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		voice := Voice{ID: v.Name, Name: v.Name}
		if len(v.LanguageCodes) > 0 {
			voice.Language = v.LanguageCodes[0]
		}
		voices = append(voices, voice)
	}
	return voices, nil
}

// ClearCache removes all cached audio files.
func (g *googleEngine) ClearCache() error {
	return os.RemoveAll(g.cacheDir)
}

// languageFromVoiceName extracts the language code prefix of names like
// "en-US-Neural2-C".
func languageFromVoiceName(name string) string {
	parts := strings.SplitN(name, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

func md5Sum(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}
