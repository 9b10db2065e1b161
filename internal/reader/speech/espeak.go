// eSpeak/eSpeak-NG engine, the cross-platform fallback.
package speech

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func newESpeakEngine() (Engine, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}

	// Sanity-check the installation before handing it to the player.
	if err := exec.Command(path, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	return &commandEngine{
		build: func(req Request) (string, []string, error) {
			path, err := findESpeakExecutable()
			if err != nil {
				return "", nil, err
			}
			args := []string{}
			if req.Voice != "" && req.Voice != "default" {
				args = append(args, "-v", req.Voice)
			}
			// eSpeak speaks in words per minute, default 175.
			args = append(args, "-s", strconv.Itoa(clampInt(int(175*req.Rate), 80, 500)))
			// Pitch is 0-99, default 50.
			args = append(args, "-p", strconv.Itoa(clampInt(int(50*req.Pitch), 0, 99)))
			// Amplitude is 0-200, default 100.
			args = append(args, "-a", strconv.Itoa(clampInt(int(100*req.Volume), 0, 200)))
			args = append(args, req.Text)
			return path, args, nil
		},
		list: listESpeakVoices,
	}, nil
}

func findESpeakExecutable() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

func listESpeakVoices() ([]Voice, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, err
	}

	output, err := exec.Command(path, "--voices").Output()
	if err != nil {
		return nil, err
	}

	return parseESpeakVoices(string(output)), nil
}

// parseESpeakVoices parses `espeak --voices` output. Each voice line looks
// like: Pty Language Age/Gender VoiceName File OtherLanguages
func parseESpeakVoices(output string) []Voice {
	lines := strings.Split(output, "\n")
	voices := make([]Voice, 0)

	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) >= 4 {
			voices = append(voices, Voice{
				ID:       fields[3],
				Name:     fields[3],
				Language: fields[1],
			})
		}
	}

	return voices
}
