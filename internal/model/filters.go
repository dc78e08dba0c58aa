package model

// ActiveFilters constrains both generation prompts and the displayed
// destination list. MaxDistance is kept for the UI slider; nothing server
// side measures real distance.
type ActiveFilters struct {
	Locations   []string `json:"locations"`
	Genders     []string `json:"genders"`
	Races       []string `json:"races"`
	Religions   []string `json:"religions"`
	PlaceTypes  []string `json:"placeTypes"`
	MaxDistance int      `json:"maxDistance"`
}

// DefaultFilters returns the initial filter set.
func DefaultFilters() ActiveFilters {
	return ActiveFilters{
		Locations:   []string{},
		Genders:     []string{},
		Races:       []string{},
		Religions:   []string{},
		PlaceTypes:  []string{},
		MaxDistance: 50,
	}
}
