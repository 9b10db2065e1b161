// Splits learning content into speakable segments for the playback engine.
package chunk

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultMaxLen is the default upper bound on chunk length in characters.
// Segments around this size give the speech engine natural breathing room
// without audible gaps mid-sentence.
const DefaultMaxLen = 200

var (
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	linkRe        = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	fenceRe       = regexp.MustCompile("```+")
	inlineCodeRe  = regexp.MustCompile("`([^`]*)`")
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicRe      = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	headingRe     = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	breakRunRe    = regexp.MustCompile(`\n{3,}`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	sentenceGapRe = regexp.MustCompile(`([.!?])(\p{Lu})`)
)

// Clean strips markup from content and normalizes whitespace, producing the
// plain text a listener should hear. It is total over any input.
func Clean(content string) string {
	text := tagRe.ReplaceAllString(content, " ")
	text = linkRe.ReplaceAllString(text, "$1")
	text = fenceRe.ReplaceAllString(text, " ")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = boldRe.ReplaceAllString(text, "$1$2")
	text = italicRe.ReplaceAllString(text, "$1$2")
	text = headingRe.ReplaceAllString(text, "")
	text = breakRunRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = sentenceGapRe.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}

// Split cleans content and cuts it into an ordered sequence of speakable
// chunks no longer than maxLen, preferring sentence boundaries. A single
// sentence longer than maxLen becomes its own oversized chunk; sentences are
// never split. Empty content yields an empty sequence.
func Split(content string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	text := Clean(content)
	if text == "" {
		return nil
	}

	var chunks []string
	current := ""
	for _, sentence := range sentences(text) {
		switch {
		case current == "":
			current = sentence
		case len(current)+1+len(sentence) <= maxLen:
			current += " " + sentence
		default:
			chunks = append(chunks, current)
			current = sentence
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	// No sentence boundaries at all: speak the whole text as one chunk.
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// sentences splits cleaned text on sentence-ending punctuation followed by
// whitespace (or end of text), discarding empty pieces. Text without a final
// terminator still yields its trailing fragment.
func sentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}
