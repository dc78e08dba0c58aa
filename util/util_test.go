package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomRating(t *testing.T) {
	for i := 0; i < 200; i++ {
		r := RandomRating()
		assert.GreaterOrEqual(t, r, 3.5)
		assert.LessOrEqual(t, r, 5.0)
	}
}

func TestGeneratedDestinationID(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := GeneratedDestinationID(i)
		assert.GreaterOrEqual(t, id, 1000)
	}
}

func TestContainsFold(t *testing.T) {
	testCases := []struct {
		name     string
		list     []string
		value    string
		expected bool
	}{
		{"exact match", []string{"Mumbai", "Delhi"}, "Mumbai", true},
		{"case insensitive", []string{"Mumbai", "Delhi"}, "mumbai", true},
		{"no match", []string{"Mumbai", "Delhi"}, "Pune", false},
		{"empty list", []string{}, "Mumbai", false},
		{"substring is not a match", []string{"Navi Mumbai"}, "Mumbai", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ContainsFold(tc.list, tc.value))
		})
	}
}

func TestIntersectsFold(t *testing.T) {
	assert.True(t, IntersectsFold([]string{"Beach", "Foodie"}, []string{"foodie"}))
	assert.False(t, IntersectsFold([]string{"Beach"}, []string{"Historic"}))
	assert.False(t, IntersectsFold(nil, []string{"Historic"}))
}
