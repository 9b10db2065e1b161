// macOS `say` engine.
package speech

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func newSayEngine() (Engine, error) {
	path, err := exec.LookPath("say")
	if err != nil {
		return nil, fmt.Errorf("say not found: %w", err)
	}

	return &commandEngine{
		build: func(req Request) (string, []string, error) {
			args := []string{}
			if req.Voice != "" && req.Voice != "default" {
				args = append(args, "-v", req.Voice)
			}
			// say takes words per minute; its default is around 175.
			// Pitch has no command-line knob, so the multiplier is ignored.
			args = append(args, "-r", strconv.Itoa(clampInt(int(175*req.Rate), 80, 500)))
			args = append(args, req.Text)
			return path, args, nil
		},
		list: func() ([]Voice, error) {
			return listSayVoices(path)
		},
	}, nil
}

// listSayVoices parses `say -v ?` output. Each line looks like:
// Alex                en_US    # Most people recognize me by my voice.
func listSayVoices(path string) ([]Voice, error) {
	output, err := exec.Command(path, "-v", "?").Output()
	if err != nil {
		return nil, err
	}

	var voices []Voice
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		voices = append(voices, Voice{
			ID:       fields[0],
			Name:     fields[0],
			Language: fields[1],
		})
	}

	return voices, nil
}
