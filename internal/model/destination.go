package model

// Location places a destination in a city. Country defaults to "India"
// during normalization of AI output.
type Location struct {
	City    string `json:"city,omitempty" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Destination is a travel place shown on a swipe card. Seed destinations use
// small sequential IDs; AI-generated ones get random IDs offset above 1000.
type Destination struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
	Location    Location `json:"location"`
}

// GeneratedDestination is a destination candidate as returned by the AI,
// before the store assigns it an ID, rating and image.
type GeneratedDestination struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"required,min=1"`
	Location    Location `json:"location"`
}

// GenerationRequest carries the constraints for one AI generation batch.
// ExistingNames is advisory dedup guidance only; the store applies a hard
// name filter on merge.
type GenerationRequest struct {
	Locations     []string `json:"locations"`
	Categories    []string `json:"categories"`
	ExistingNames []string `json:"existingNames"`
}

// SwipeAction records a single swipe on a card.
type SwipeAction struct {
	DestinationID int    `json:"destination_id"`
	Action        string `json:"action" validate:"required,oneof=like dislike save"`
}
