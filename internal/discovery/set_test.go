package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirrorlabs/nft-mirror/internal/discovery"
)

func TestTokenIDSet(t *testing.T) {
	s := discovery.NewTokenIDSet("1", "2", "2")

	assert.Len(t, s, 2)
	assert.True(t, s.Contains("1"))
	assert.False(t, s.Contains("3"))

	s.Add("3")
	assert.True(t, s.Contains("3"))
}

func TestUnion(t *testing.T) {
	a := discovery.NewTokenIDSet("1", "2", "3")
	b := discovery.NewTokenIDSet("3", "4", "5")

	merged := discovery.Union(a, b)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, merged.Sorted())

	// Inputs are untouched
	assert.Len(t, a, 3)
	assert.Len(t, b, 3)

	assert.Empty(t, discovery.Union())
}

func TestSorted(t *testing.T) {
	// Numeric order, not lexicographic: "9" sorts before "10" and IDs wider
	// than int64 still compare numerically
	s := discovery.NewTokenIDSet("10", "9", "2", "115792089237316195423570985008687907853269984665640564039457584007913129639935")

	assert.Equal(t, []string{
		"2",
		"9",
		"10",
		"115792089237316195423570985008687907853269984665640564039457584007913129639935",
	}, s.Sorted())
}

func TestSorted_NonNumericFallback(t *testing.T) {
	s := discovery.NewTokenIDSet("banana", "apple", "3")

	// Non-numeric IDs fall back to lexicographic comparison
	assert.Equal(t, []string{"3", "apple", "banana"}, s.Sorted())
}
