package speech

import (
	"reflect"
	"testing"
)

func TestParseESpeakVoices(t *testing.T) {
	output := `Pty Language Age/Gender VoiceName          File          Other Languages
 5  af             M  afrikaans          other/af
 5  en-gb          M  english            en
 2  en-gb          M  english-mb-en1     mb/mb-en1     (en 10)
`

	got := parseESpeakVoices(output)
	want := []Voice{
		{ID: "afrikaans", Name: "afrikaans", Language: "af"},
		{ID: "english", Name: "english", Language: "en-gb"},
		{ID: "english-mb-en1", Name: "english-mb-en1", Language: "en-gb"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseESpeakVoices() = %v, want %v", got, want)
	}
}

func TestParseESpeakVoicesEmptyOutput(t *testing.T) {
	if got := parseESpeakVoices("Pty Language Age/Gender VoiceName File\n"); len(got) != 0 {
		t.Errorf("parseESpeakVoices() = %v, want none", got)
	}
}
