package model

// UserProfile is one of the swipeable traveller profiles. Liked and Saved
// reference destinations by ID for the mock matched users.
type UserProfile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name" validate:"required"`
	Age        int      `json:"age" validate:"required,gte=13,lte=120"`
	ProfilePic string   `json:"profilePic"`
	Location   string   `json:"location"`
	Bio        string   `json:"bio"`
	Interests  []string `json:"interests"`
	Gender     string   `json:"gender"`
	Race       []string `json:"race"`
	Religion   []string `json:"religion"`
	Liked      []int    `json:"liked,omitempty"`
	Saved      []int    `json:"saved,omitempty"`
	PhotoDump  []string `json:"photoDump,omitempty"`
}
