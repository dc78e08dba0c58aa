package mistral

import (
	"fmt"
	"strings"

	"github.com/devtrio/wanderswipe/internal/model"
)

// Fallbacks when the caller supplies no location or category constraints.
var (
	defaultPromptCities     = []string{"Mumbai", "Delhi", "Goa", "Bangalore"}
	defaultPromptCategories = []string{"Cultural", "Scenic", "Historic"}
)

// destinationPrompt builds the constrained generation prompt: an exact-count
// JSON array limited to the given cities, excluding recently seen names.
func destinationPrompt(req model.GenerationRequest, count int) string {
	locationList := strings.Join(defaultPromptCities, ", ")
	if len(req.Locations) > 0 {
		locationList = strings.Join(req.Locations, ", ")
	}

	categoryList := strings.Join(defaultPromptCategories, ", ")
	if len(req.Categories) > 0 {
		categoryList = strings.Join(req.Categories, ", ")
	}

	existingList := "None"
	if len(req.ExistingNames) > 0 {
		recent := req.ExistingNames
		if len(recent) > existingNamesWindow {
			recent = recent[len(recent)-existingNamesWindow:]
		}
		existingList = strings.Join(recent, ", ")
	}

	return fmt.Sprintf(`Generate exactly %d unique travel destinations in JSON array format.

STRICT LOCATION CONSTRAINT: All generated destinations MUST be located ONLY within these EXACT cities: %s. The 'city' field in the JSON MUST precisely match one of these cities. DO NOT include destinations from any other cities, variations, or nearby areas.

CRITICAL UNIQUENESS REQUIREMENT - THIS IS MANDATORY:
- DO NOT generate any destinations with names that are already in this list (case-insensitive): %s
- Ensure each generated destination has a unique name.

Other requirements:
- Categories: Focus on %s
- Descriptions should be 1-2 sentences, engaging and specific

Return ONLY a JSON array in this exact format:
[
{
  "name": "Specific Place Name",
  "description": "Engaging description of the place and what makes it special",
  "tags": ["tag1", "tag2", "tag3"],
  "location": {
    "city": "EXACT_CITY_FROM_LIST",
    "country": "India"
  }
}
]

FINAL CHECK: Every destination MUST be in one of these cities ONLY: %s AND MUST NOT be in the existing names list.`,
		count, locationList, existingList, categoryList, locationList)
}
