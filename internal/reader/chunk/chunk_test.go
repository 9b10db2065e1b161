package chunk

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentenceBoundaries(t *testing.T) {
	content := "Hello world. This is a test. Short."

	got := Split(content, 15)
	want := []string{"Hello world.", "This is a test.", "Short."}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitGreedyAccumulation(t *testing.T) {
	content := "One. Two. Three is a much longer sentence here. Four."

	got := Split(content, 20)
	want := []string{"One. Two.", "Three is a much longer sentence here.", "Four."}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitLengthBound(t *testing.T) {
	content := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs! " +
		"How vexingly quick daft zebras jump? " +
		"Sphinx of black quartz, judge my vow."

	const maxLen = 60
	for _, c := range Split(content, maxLen) {
		if len(c) <= maxLen {
			continue
		}
		// Oversized chunks are allowed only for a single unsplittable
		// sentence.
		if n := len(sentences(c)); n != 1 {
			t.Errorf("chunk %q exceeds %d chars and holds %d sentences", c, maxLen, n)
		}
	}
}

func TestSplitOversizedSentenceKeptWhole(t *testing.T) {
	long := "This single sentence is far longer than the configured maximum chunk length and must never be split."
	content := "Short one. " + long + " Tail."

	got := Split(content, 30)
	want := []string{"Short one.", long, "Tail."}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %q, want %q", got, want)
	}
}

func TestSplitRejoinMatchesClean(t *testing.T) {
	inputs := []string{
		"Hello world. This is a test. Short.",
		"# Heading\n\nSome **bold** text. And *italic* too! A [link](https://example.com) here.\n\n\n\nMore after breaks.",
		"Plain text with   extra   spaces. Second sentence.No space before capital.",
		"`inline code` and ```\nfenced\n``` blocks. Done?",
		"<p>HTML tags</p> should vanish. Right!",
	}

	for _, input := range inputs {
		chunks := Split(input, 40)
		joined := strings.Join(chunks, " ")
		if cleaned := Clean(input); joined != cleaned {
			t.Errorf("rejoined chunks diverge from cleaned input:\n  joined:  %q\n  cleaned: %q", joined, cleaned)
		}
	}
}

func TestCleanStripsMarkup(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"heading", "## What is Gravity\nGravity pulls.", "What is Gravity Gravity pulls."},
		{"bold", "This is **important** stuff.", "This is important stuff."},
		{"italic", "An *emphasized* word.", "An emphasized word."},
		{"link", "See [the docs](https://example.com) for more.", "See the docs for more."},
		{"image", "![diagram](img.png) follows.", "diagram follows."},
		{"inline code", "Run `go build` here.", "Run go build here."},
		{"tags", "Hello <b>world</b>.", "Hello world ."},
		{"sentence gap", "First.Second one.", "First. Second one."},
		{"whitespace", "  a \t b \n\n\n\n c  ", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.content); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\n\t"} {
		if got := Split(content, 200); len(got) != 0 {
			t.Errorf("Split(%q) = %q, want empty", content, got)
		}
	}
}

func TestSplitNoSentencePunctuation(t *testing.T) {
	content := "a stream of words with no terminator at all"

	got := Split(content, 10)
	if len(got) != 1 || got[0] != content {
		t.Fatalf("Split() = %q, want the whole text as one chunk", got)
	}
}

func TestSplitDefaultMaxLen(t *testing.T) {
	content := strings.Repeat("A sentence of modest size. ", 30)

	for _, c := range Split(content, 0) {
		if len(c) > DefaultMaxLen {
			t.Errorf("chunk exceeds default bound: %d chars", len(c))
		}
	}
}
