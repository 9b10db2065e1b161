package speech

import (
	"strings"
	"testing"
)

func TestBuildSAPIScript(t *testing.T) {
	script := buildSAPIScript(Request{
		Text:   "It's alive. Really!",
		Voice:  "Microsoft Zira Desktop",
		Rate:   1.5,
		Volume: 0.8,
	})

	for _, want := range []string{
		"$s.Rate = 5;",
		"$s.Volume = 80;",
		"$s.SelectVoice('Microsoft Zira Desktop');",
		"$s.Speak('It''s alive. Really!')",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}
}

func TestBuildSAPIScriptClampsRate(t *testing.T) {
	script := buildSAPIScript(Request{Text: "x", Rate: 9.0, Volume: 1.0})
	if !strings.Contains(script, "$s.Rate = 10;") {
		t.Errorf("rate not clamped to 10:\n%s", script)
	}
}
