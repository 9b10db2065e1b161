// Windows SAPI engine via the System.Speech PowerShell bridge.
package speech

import (
	"fmt"
	"os/exec"
	"strings"
)

func newSAPIEngine() (Engine, error) {
	path, err := exec.LookPath("powershell")
	if err != nil {
		return nil, fmt.Errorf("powershell not found: %w", err)
	}

	return &commandEngine{
		build: func(req Request) (string, []string, error) {
			script := buildSAPIScript(req)
			return path, []string{"-NoProfile", "-Command", script}, nil
		},
		list: func() ([]Voice, error) {
			return listSAPIVoices(path)
		},
	}, nil
}

func buildSAPIScript(req Request) string {
	var b strings.Builder
	b.WriteString("Add-Type -AssemblyName System.Speech; ")
	b.WriteString("$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; ")

	// SAPI rate runs -10..10 around normal speed.
	rate := clampInt(int((req.Rate-1.0)*10), -10, 10)
	fmt.Fprintf(&b, "$s.Rate = %d; ", rate)
	fmt.Fprintf(&b, "$s.Volume = %d; ", clampInt(int(100*req.Volume), 0, 100))
	if req.Voice != "" && req.Voice != "default" {
		fmt.Fprintf(&b, "$s.SelectVoice('%s'); ", escapeSingleQuotes(req.Voice))
	}
	fmt.Fprintf(&b, "$s.Speak('%s')", escapeSingleQuotes(req.Text))
	return b.String()
}

func listSAPIVoices(path string) ([]Voice, error) {
	script := "Add-Type -AssemblyName System.Speech; " +
		"$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; " +
		"$s.GetInstalledVoices() | ForEach-Object { $i = $_.VoiceInfo; \"$($i.Name)|$($i.Culture)\" }"

	output, err := exec.Command(path, "-NoProfile", "-Command", script).Output()
	if err != nil {
		return nil, err
	}

	var voices []Voice
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		voice := Voice{ID: parts[0], Name: parts[0]}
		if len(parts) == 2 {
			voice.Language = parts[1]
		}
		voices = append(voices, voice)
	}

	return voices, nil
}

// escapeSingleQuotes escapes text for a PowerShell single-quoted literal.
func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
