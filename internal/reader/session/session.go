// Interactive read-aloud session: shows a resource, arms the player with
// its content, and maps keyboard input to playback transitions.
package session

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"readaloud/internal/cli/scheme/colours"
	"readaloud/internal/domain/resource"
	"readaloud/internal/reader/chunk"
	"readaloud/internal/reader/player"
	"readaloud/internal/reader/speech"
)

type Session struct {
	player *player.Player
	ctx    context.Context
	Cancel context.CancelFunc
}

// New wires a session to the given engine. engine may be nil when the
// environment has no speech capability; the session then falls back to
// printing text.
func New(engine speech.Engine) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	p := player.New(engine, player.Config{
		Voice:  viper.GetString("tts.voice"),
		Rate:   viper.GetFloat64("tts.rate"),
		Pitch:  viper.GetFloat64("tts.pitch"),
		Volume: viper.GetFloat64("tts.volume"),
		MaxLen: viper.GetInt("reader.chunk_max"),
		Gap:    time.Duration(viper.GetInt("reader.gap_ms")) * time.Millisecond,
	})

	return &Session{
		player: p,
		ctx:    ctx,
		Cancel: cancel,
	}
}

// Player exposes the playback controller, mostly for shutdown handling.
func (s *Session) Player() *player.Player {
	return s.player
}

// Read displays a resource and runs the interactive playback loop until
// the user stops or playback finishes.
func (s *Session) Read(item resource.Item) {
	fmt.Println()
	colours.Title.Printf("📖 %s\n", item.Topic)
	colours.Subject.Printf("📚 %s", item.Subject)
	if item.Duration != "" {
		fmt.Printf(" | ⏱️ %s", item.Duration)
	}
	fmt.Println()
	if item.Description != "" {
		fmt.Printf("💡 %s\n", item.Description)
	}
	fmt.Println()

	if !s.player.Available() {
		colours.Warning.Println("⚠️ No speech engine available, showing text instead")
		fmt.Println()
		fmt.Println(chunk.Clean(item.Content))
		return
	}

	s.player.SetContent(item.Content)

	progress := s.player.Progress()
	if progress.Total == 0 {
		colours.Warning.Println("🔇 Nothing to play: this resource has no readable text")
		return
	}

	colours.Success.Printf("🎵 Reading aloud in %d segments...\n", progress.Total)
	fmt.Println("💡 p=pause/resume  n=next  b=back  r=restart  +/-=speed  s=stop")
	fmt.Println()

	s.player.Play()
	s.controlLoop()
	s.player.Stop()
}

func (s *Session) controlLoop() {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			s.showProgress()
			input, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			input = strings.TrimSpace(strings.ToLower(input))

			progress := s.player.Progress()
			if progress.State == player.StateFinished && input == "" {
				colours.Success.Println("✅ Finished! 🌟")
				return
			}

			switch input {
			case "p", "pause":
				if progress.State == player.StatePlaying {
					s.player.Pause()
					colours.Warning.Println("⏸️  Paused")
				} else {
					s.player.Resume()
					colours.Success.Println("▶️  Resumed")
				}
			case "n", "next":
				s.player.SkipNext()
			case "b", "back":
				s.player.SkipPrevious()
			case "r", "restart":
				s.player.Restart()
				colours.Info.Println("⏮️  Restarted")
			case "+":
				s.changeRate(0.25)
			case "-":
				s.changeRate(-0.25)
			case "s", "stop", "q", "quit":
				s.player.Stop()
				colours.Warning.Println("⏹️  Stopped")
				return
			case "":
				continue
			default:
				colours.Info.Println("ℹ️  p=pause/resume, n=next, b=back, r=restart, +/- speed, s=stop")
			}
		}
	}
}

func (s *Session) changeRate(delta float64) {
	rate := s.player.Rate() + delta
	if rate < 0.5 {
		rate = 0.5
	}
	if rate > 2.0 {
		rate = 2.0
	}
	s.player.SetRate(rate)
	colours.Info.Printf("🏃 Speed: %sx\n", strconv.FormatFloat(rate, 'f', -1, 64))
}

func (s *Session) showProgress() {
	progress := s.player.Progress()
	colours.Progress.Printf("\n[%s %d/%d] ", progress.State, progress.Position, progress.Total)
	fmt.Print("> ")
}

// ShowVoices prints the voices the engine currently reports. Engines may
// populate their list late, hence the explicit empty-list hint.
func (s *Session) ShowVoices() {
	voices, err := s.player.Voices()
	if err != nil {
		colours.Error.Printf("❌ Failed to list voices: %v\n", err)
		return
	}

	if len(voices) == 0 {
		colours.Warning.Println("🔍 No voices reported yet, try again in a moment")
		return
	}

	fmt.Println()
	colours.Title.Println("🎤 Available Voices 🎤")
	fmt.Println()
	for i, voice := range voices {
		fmt.Printf("  %d. ", i+1)
		colours.Info.Printf("%s", voice.Name)
		if voice.Language != "" {
			fmt.Printf(" (%s)", voice.Language)
		}
		fmt.Println()
	}
	colours.Success.Printf("✨ %d voices available\n", len(voices))
	logrus.WithField("count", len(voices)).Debug("Listed voices")
}
