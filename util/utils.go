package util

import (
	"math"
	"math/rand"
	"strings"
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// RandomRating returns a rating in [3.5, 5.0] rounded to one decimal,
// assigned to AI-generated destinations at merge time.
func RandomRating() float64 {
	return math.Round((rand.Float64()*1.5+3.5)*10) / 10
}

// GeneratedDestinationID picks a pseudo-random ID above the seed range so
// AI-origin entries stay distinguishable from the small sequential seed IDs.
func GeneratedDestinationID(index int) int {
	return rand.Intn(10000) + 1000 + index
}

// ContainsFold reports whether list contains s, compared case-insensitively.
func ContainsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// IntersectsFold reports whether the two lists share at least one element,
// compared case-insensitively.
func IntersectsFold(a, b []string) bool {
	for _, v := range a {
		if ContainsFold(b, v) {
			return true
		}
	}
	return false
}
