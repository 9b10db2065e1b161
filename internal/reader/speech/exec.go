package speech

import (
	"fmt"
	"os/exec"
	"sync"
)

// commandEngine runs one external TTS process per utterance. Killing the
// process is the only cancellation these tools support, so Cancel is a kill
// plus suppression of the pending wait callback.
type commandEngine struct {
	mu    sync.Mutex
	seq   uint64
	cmd   *exec.Cmd
	build func(req Request) (path string, args []string, err error)
	list  func() ([]Voice, error)
}

func (e *commandEngine) Speak(req Request) error {
	path, args, err := e.build(req)
	if err != nil {
		return err
	}

	e.mu.Lock()
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to start speech process: %w", err)
	}
	e.seq++
	id := e.seq
	e.cmd = cmd
	e.mu.Unlock()

	if req.OnStart != nil {
		req.OnStart()
	}

	go func() {
		waitErr := cmd.Wait()

		e.mu.Lock()
		stale := id != e.seq
		if !stale {
			e.cmd = nil
		}
		e.mu.Unlock()

		if stale {
			return
		}
		if waitErr != nil {
			if req.OnError != nil {
				req.OnError(waitErr)
			}
			return
		}
		if req.OnEnd != nil {
			req.OnEnd()
		}
	}()

	return nil
}

func (e *commandEngine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++ // invalidates any pending wait callback
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	e.cmd = nil
}

func (e *commandEngine) Voices() ([]Voice, error) {
	return e.list()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
