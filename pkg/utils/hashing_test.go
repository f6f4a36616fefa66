package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringHash32(t *testing.T) {
	assert.Equal(t, int32(0), StringHash32(""))
	assert.Equal(t, int32(97), StringHash32("a"))
	assert.Equal(t, int32(3105), StringHash32("ab"))
	assert.Equal(t, int32(1794106052), StringHash32("hello world"))
	// Astral characters hash as two UTF-16 code units.
	assert.Equal(t, int32(1772899), StringHash32("😀"))
	assert.Equal(t, int32(516620594), StringHash32("Reykjavik, Iceland-hot springs-trip-9"))
}

func TestFallbackImageURL_Deterministic(t *testing.T) {
	a := FallbackImageURL("Tokyo", "sushi", "t1")
	b := FallbackImageURL("Tokyo", "sushi", "t1")
	c := FallbackImageURL("Tokyo", "sushi", "t2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^https://picsum\.photos/seed/\d+/800/400$`, a)
}

func TestFallbackImageURL_NegativeHashUsesMagnitude(t *testing.T) {
	assert.Equal(t, int32(-1135234945), StringHash32("Tokyo-sushi-t1"))
	assert.Equal(t, "https://picsum.photos/seed/1135234945/800/400", FallbackImageURL("Tokyo", "sushi", "t1"))
	assert.Equal(t, "https://picsum.photos/seed/1577229021/800/400", FallbackImageURL("Tokyo", "", "t1"))
}

func TestFallbackImageSeed_NonNegative(t *testing.T) {
	for _, in := range []string{"Paris", "Reykjavik, Iceland", "東京", "a long destination name that overflows"} {
		assert.GreaterOrEqual(t, FallbackImageSeed(in, "", "id"), int64(0))
	}
}
