// Package textnorm normalizes question label text before edit-distance
// scoring so that boilerplate differences do not register as changes.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	variableRefPattern  = regexp.MustCompile(`[$]+\{.*?\}`)
	htmlTagPattern      = regexp.MustCompile(`<.*?>`)
	questionNumPattern  = regexp.MustCompile(`\w*[0-9]*.*[0-9]*\) `)
	punctuationReplacer = strings.NewReplacer(".", "", "?", "", "'", "")
)

// Normalizer strips markup, question numbering, punctuation, and stop words
// from a label. The stop-word set is fixed at construction.
type Normalizer struct {
	stopWords map[string]struct{}
}

// NewNormalizer builds a Normalizer from the given stop-word list.
func NewNormalizer(stopWords []string) *Normalizer {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{stopWords: set}
}

// Normalize reduces a label to its content words, lowercased. Variable
// references like ${name}, HTML tags, and leading question numbers such as
// "Q3) " are removed before stop-word filtering.
func (n *Normalizer) Normalize(s string) string {
	s = variableRefPattern.ReplaceAllString(s, "")
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = questionNumPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(punctuationReplacer.Replace(strings.ToLower(s)))

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, drop := n.stopWords[w]; !drop {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// DefaultStopWords returns the built-in English stop-word list. Question
// words that carry meaning in a survey (where, how, when, why) are kept;
// survey boilerplate (please, specify) is dropped.
func DefaultStopWords() []string {
	return []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those",
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"a", "an", "the", "and", "but", "if", "or", "because", "as",
		"until", "while", "of", "at", "by", "for", "with", "about",
		"against", "between", "into", "through", "during", "before",
		"after", "above", "below", "to", "from", "up", "down", "in",
		"out", "on", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "all", "any", "both", "each", "few",
		"more", "most", "other", "some", "such", "no", "nor", "not",
		"only", "own", "same", "so", "than", "too", "very",
		"s", "t", "can", "will", "just", "don", "should", "now",
		"please", "specify",
	}
}
