package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCompareStringsIdentical(t *testing.T) {
	d := CompareStrings("household size", "household size")
	assert.True(t, d.Comparable())
	assert.True(t, d.Zero())
	assert.Equal(t, 0.0, d.Score())
	assert.Equal(t, 1.0, d.Similarity())
}

func TestCompareStringsDisjoint(t *testing.T) {
	d := CompareStrings("abc", "xyz")
	assert.True(t, d.Comparable())
	assert.Equal(t, 1.0, d.Score())
}

func TestCompareStringsSingleEdit(t *testing.T) {
	// One substitution over four runes.
	d := CompareStrings("fork", "form")
	assert.True(t, d.Comparable())
	assert.InDelta(t, 0.25, d.Score(), 1e-9)
}

func TestCompareStringsSymmetric(t *testing.T) {
	a := CompareStrings("respondent age", "respondent gae")
	b := CompareStrings("respondent gae", "respondent age")
	assert.Equal(t, a.Score(), b.Score())
}

func TestCompareStringsNormalizesByRunes(t *testing.T) {
	// Multi-byte runes count once each.
	d := CompareStrings("café", "cafe")
	assert.True(t, d.Comparable())
	assert.InDelta(t, 0.25, d.Score(), 1e-9)
}

func TestCompareStringsBothEmptyIncomparable(t *testing.T) {
	d := CompareStrings("", "")
	assert.False(t, d.Comparable())
	assert.Equal(t, IncomparableScore, d.Score())
	assert.False(t, d.Zero())
}

func TestCompareStringsOneEmpty(t *testing.T) {
	d := CompareStrings("name", "")
	assert.True(t, d.Comparable())
	assert.Equal(t, 1.0, d.Score())
}

func TestCompareNilSides(t *testing.T) {
	assert.False(t, Compare(nil, strPtr("x")).Comparable())
	assert.False(t, Compare(strPtr("x"), nil).Comparable())
	assert.False(t, Compare(nil, nil).Comparable())
	assert.True(t, Compare(strPtr("x"), strPtr("x")).Zero())
}

func TestCompareStringsBounded(t *testing.T) {
	cases := [][2]string{
		{"a", "completely different text"},
		{"What is your age?", "Household roster"},
		{"yes", "no"},
	}
	for _, c := range cases {
		d := CompareStrings(c[0], c[1])
		assert.GreaterOrEqual(t, d.Score(), 0.0)
		assert.LessOrEqual(t, d.Score(), 1.0)
	}
}
