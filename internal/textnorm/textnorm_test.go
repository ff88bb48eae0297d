package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsMarkup(t *testing.T) {
	n := NewNormalizer(DefaultStopWords())

	cases := map[string]string{
		"How old is ${respondent}?":        "how old",
		"<b>Household</b> size":            "household size",
		"Q1) What is your name?":           "name",
		"Please specify the other reason.": "reason",
		"Where do you live?":               "where live",
	}
	for in, want := range cases {
		assert.Equal(t, want, n.Normalize(in), "input: %q", in)
	}
}

func TestNormalizeEmptyAndStopOnly(t *testing.T) {
	n := NewNormalizer(DefaultStopWords())

	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("is the a of"))
}

func TestNormalizeCustomStopWords(t *testing.T) {
	n := NewNormalizer([]string{"foo"})

	assert.Equal(t, "the bar", n.Normalize("the Foo bar"))
}
