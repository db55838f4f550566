// Package summarizer produces short extractive summaries by term-frequency
// scoring of sentences.
package summarizer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/sentences"
	"github.com/clipperhouse/uax29/words"
)

// DefaultSentences is the summary length used when the config does not say
// otherwise.
const DefaultSentences = 5

// Function words carry no topical weight and are ignored when scoring.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"if": true, "of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "it": true, "its": true, "this": true,
	"that": true, "these": true, "those": true, "he": true, "she": true,
	"they": true, "them": true, "his": true, "her": true, "their": true,
	"we": true, "you": true, "i": true, "not": true, "no": true, "so": true,
	"do": true, "does": true, "did": true, "has": true, "have": true,
	"had": true, "will": true, "would": true, "can": true, "could": true,
	"said": true, "says": true, "also": true, "more": true, "than": true,
	"into": true, "about": true, "after": true, "over": true, "up": true,
	"out": true, "who": true, "which": true, "what": true, "when": true,
	"where": true, "there": true,
}

// Summarize selects the numSentences highest-scoring sentences of text and
// returns them in original document order. A sentence scores the mean
// document frequency of its non-stop-word terms. If the document has fewer
// sentences than requested, all of them are returned.
func Summarize(text string, numSentences int) []string {
	if numSentences <= 0 {
		numSentences = DefaultSentences
	}

	sents := SplitSentences(text)
	if len(sents) == 0 {
		return nil
	}
	if len(sents) <= numSentences {
		return sents
	}

	freq := termFrequencies(sents)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sents))
	for i, s := range sents {
		ranked[i] = scored{index: i, score: sentenceScore(s, freq)}
	}

	// Highest score first; ties resolved toward the earlier sentence.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	top := ranked[:numSentences]
	sort.Slice(top, func(i, j int) bool {
		return top[i].index < top[j].index
	})

	out := make([]string, numSentences)
	for i, s := range top {
		out[i] = sents[s.index]
	}
	return out
}

// SplitSentences segments text into trimmed, non-empty sentences using
// Unicode sentence boundary rules.
func SplitSentences(text string) []string {
	var out []string
	seg := sentences.NewSegmenter([]byte(text))
	for seg.Next() {
		s := strings.TrimSpace(string(seg.Bytes()))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// termFrequencies counts content words across the whole document.
func termFrequencies(sents []string) map[string]int {
	freq := make(map[string]int)
	for _, s := range sents {
		for _, term := range tokenize(s) {
			freq[term]++
		}
	}
	return freq
}

// sentenceScore is the mean frequency of the sentence's content words.
func sentenceScore(sentence string, freq map[string]int) float64 {
	terms := tokenize(sentence)
	if len(terms) == 0 {
		return 0
	}
	total := 0
	for _, term := range terms {
		total += freq[term]
	}
	return float64(total) / float64(len(terms))
}

// tokenize lower-cases and returns the content words of s, dropping stop
// words and tokens with no letters or digits.
func tokenize(s string) []string {
	var out []string
	seg := words.NewSegmenter([]byte(s))
	for seg.Next() {
		token := strings.ToLower(string(seg.Bytes()))
		if stopWords[token] || !hasAlnum(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
