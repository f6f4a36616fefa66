package utils

import (
	"fmt"
	"unicode/utf16"
)

// StringHash32 is the classic 31-multiplier string hash over UTF-16 code
// units with 32-bit wrap-around, matching what the mobile client computes.
func StringHash32(s string) int32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(s)) {
		hash = hash*31 + int32(unit)
	}
	return hash
}

// FallbackImageSeed derives a stable non-negative seed from a destination,
// an activity and a trip id.
func FallbackImageSeed(destination, activity, id string) int64 {
	seed := int64(StringHash32(fmt.Sprintf("%s-%s-%s", destination, activity, id)))
	if seed < 0 {
		seed = -seed
	}
	return seed
}

func FallbackImageURL(destination, activity, id string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/800/400", FallbackImageSeed(destination, activity, id))
}
