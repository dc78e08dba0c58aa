package mistral

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/devtrio/wanderswipe/util"
)

const (
	defaultName        = "Unnamed Place"
	defaultDescription = "A wonderful place to visit"
	defaultCountry     = "India"
	maxTags            = 3
)

var defaultTags = []string{"Cultural", "Local"}

// rawDestination keeps every field loosely typed; the model's output is an
// untrusted payload and field presence or types are never assumed.
type rawDestination struct {
	Name        any `json:"name"`
	Description any `json:"description"`
	Tags        any `json:"tags"`
	Location    struct {
		City    any `json:"city"`
		Country any `json:"country"`
	} `json:"location"`
}

// parseDestinationArray runs the full pipeline on raw model text: strict
// parse, cleanup-and-reparse, then per-element normalization and validation.
// Elements failing validation are dropped silently; an unparseable response
// is an explicit error, never a silent empty success.
func parseDestinationArray(content string) ([]model.GeneratedDestination, error) {
	var raw []rawDestination
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		cleaned := aggressiveCleanJSON(content)
		if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
			log.Printf("JSON parsing failed for content: %s", content)
			return nil, ErrParseFailure
		}
	}

	destinations := make([]model.GeneratedDestination, 0, len(raw))
	for _, r := range raw {
		dest := normalizeDestination(r)
		if err := util.ValidateStruct(dest); err != nil {
			continue
		}
		destinations = append(destinations, dest)
	}
	return destinations, nil
}

// normalizeDestination coerces loose fields into a typed candidate, applying
// defaults for missing name, description, tags and country. City stays empty
// when absent so validation can reject the element.
func normalizeDestination(r rawDestination) model.GeneratedDestination {
	return model.GeneratedDestination{
		Name:        strings.TrimSpace(stringField(r.Name, defaultName)),
		Description: strings.TrimSpace(stringField(r.Description, defaultDescription)),
		Tags:        tagsField(r.Tags),
		Location: model.Location{
			City:    strings.TrimSpace(stringField(r.Location.City, "")),
			Country: strings.TrimSpace(stringField(r.Location.Country, defaultCountry)),
		},
	}
}

func stringField(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func tagsField(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return append([]string(nil), defaultTags...)
	}
	if len(arr) > maxTags {
		arr = arr[:maxTags]
	}
	tags := make([]string, 0, len(arr))
	for _, t := range arr {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

var (
	cleanupPatterns = []*regexp.Regexp{
		regexp.MustCompile("(?i)^```json\\s*"),
		regexp.MustCompile("^```"),
		regexp.MustCompile("```$"),
		regexp.MustCompile(`(?i)^Here.*?:\s*`),
		regexp.MustCompile(`(?i)^The.*?:\s*`),
	}
	trailingCommaPattern = regexp.MustCompile(`,(\s*[\]}])`)
)

// aggressiveCleanJSON strips code fences and leading prose, slices the text
// down to the outermost array brackets and removes trailing commas, giving
// near-JSON model output a second chance to parse.
func aggressiveCleanJSON(content string) string {
	cleaned := strings.TrimSpace(content)

	for _, pattern := range cleanupPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	first := strings.Index(cleaned, "[")
	last := strings.LastIndex(cleaned, "]")
	if first >= 0 && last > first {
		cleaned = cleaned[first : last+1]
	}

	return trailingCommaPattern.ReplaceAllString(cleaned, "$1")
}
