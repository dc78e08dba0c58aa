package store

import "github.com/devtrio/wanderswipe/internal/model"

// PlaceholderImage is substituted whenever a photo lookup fails or times out.
const PlaceholderImage = "/placeholder.svg"

// seedDestinations is the fixed initial set, hydrated once on first run and
// enriched with photo URLs. There are no other fallback destinations.
var seedDestinations = []model.Destination{
	{
		ID:          1,
		Name:        "Marine Drive",
		Description: "The Queen's Necklace - Mumbai's iconic seafront promenade perfect for evening walks and street food.",
		Rating:      4.6,
		Tags:        []string{"Urban", "Scenic", "Foodie"},
		Location:    model.Location{City: "Mumbai", Country: "India"},
	},
	{
		ID:          2,
		Name:        "Gateway of India",
		Description: "Historic monument and Mumbai's most famous landmark, offering boat rides to Elephanta Caves.",
		Rating:      4.5,
		Tags:        []string{"Historic", "Cultural", "Architecture"},
		Location:    model.Location{City: "Mumbai", Country: "India"},
	},
	{
		ID:          3,
		Name:        "Colaba Causeway",
		Description: "Bustling shopping street with local markets, cafes, and the famous Leopold Cafe.",
		Rating:      4.3,
		Tags:        []string{"Shopping", "Urban", "Cultural"},
		Location:    model.Location{City: "Mumbai", Country: "India"},
	},
	{
		ID:          4,
		Name:        "Bandra-Worli Sea Link",
		Description: "Architectural marvel connecting Bandra and Worli with stunning views of Mumbai skyline.",
		Rating:      4.7,
		Tags:        []string{"Architecture", "Scenic", "Modern"},
		Location:    model.Location{City: "Mumbai", Country: "India"},
	},
	{
		ID:          5,
		Name:        "Juhu Beach",
		Description: "Popular beach destination famous for street food, especially bhel puri and pav bhaji.",
		Rating:      4.2,
		Tags:        []string{"Beach", "Foodie", "Family"},
		Location:    model.Location{City: "Mumbai", Country: "India"},
	},
	{
		ID:          6,
		Name:        "Red Fort",
		Description: "Historic fortified palace and UNESCO World Heritage site showcasing Mughal architecture.",
		Rating:      4.4,
		Tags:        []string{"Historic", "Cultural", "Architecture"},
		Location:    model.Location{City: "Delhi", Country: "India"},
	},
	{
		ID:          7,
		Name:        "India Gate",
		Description: "War memorial and iconic landmark surrounded by beautiful gardens and evening lights.",
		Rating:      4.3,
		Tags:        []string{"Historic", "Scenic", "Cultural"},
		Location:    model.Location{City: "Delhi", Country: "India"},
	},
	{
		ID:          8,
		Name:        "Baga Beach",
		Description: "Popular beach destination known for water sports, beach shacks, and vibrant nightlife.",
		Rating:      4.5,
		Tags:        []string{"Beach", "Adventure", "Nightlife"},
		Location:    model.Location{City: "Goa", Country: "India"},
	},
	{
		ID:          9,
		Name:        "Basilica of Bom Jesus",
		Description: "UNESCO World Heritage site and beautiful example of baroque architecture in India.",
		Rating:      4.6,
		Tags:        []string{"Historic", "Cultural", "Architecture"},
		Location:    model.Location{City: "Goa", Country: "India"},
	},
	{
		ID:          10,
		Name:        "Lalbagh Botanical Garden",
		Description: "Historic botanical garden with diverse flora, glass house, and peaceful walking trails.",
		Rating:      4.4,
		Tags:        []string{"Nature", "Scenic", "Family"},
		Location:    model.Location{City: "Bangalore", Country: "India"},
	},
}

// seedProfiles are the initial traveller profiles shown before any custom
// profile is created.
var seedProfiles = []model.UserProfile{
	{
		ID:         "dev-john",
		Name:       "John Doe",
		Age:        28,
		ProfilePic: "https://randomuser.me/api/portraits/men/75.jpg",
		Location:   "Mumbai, India",
		Bio:        "Lead Developer. Loves exploring historical sites and trying new tech.",
		Interests:  []string{"Historic", "Tech", "Urban", "Foodie"},
		Gender:     "Male",
		Race:       []string{"Asian"},
		Religion:   []string{"Agnosticism"},
		PhotoDump: []string{
			"https://picsum.photos/seed/john1/400/300",
			"https://picsum.photos/seed/john2/400/300",
			"https://picsum.photos/seed/john3/400/300",
		},
	},
	{
		ID:         "dev-jane",
		Name:       "Jane Smith",
		Age:        25,
		ProfilePic: "https://randomuser.me/api/portraits/women/76.jpg",
		Location:   "Delhi, India",
		Bio:        "Frontend Engineer. Passionate about nature, photography, and quiet getaways.",
		Interests:  []string{"Nature", "Photography", "Relaxation", "Scenic"},
		Gender:     "Female",
		Race:       []string{"White"},
		Religion:   []string{"Spiritual but not religious"},
		PhotoDump: []string{
			"https://picsum.photos/seed/jane1/400/300",
			"https://picsum.photos/seed/jane2/400/300",
			"https://picsum.photos/seed/jane3/400/300",
		},
	},
	{
		ID:         "dev-mike",
		Name:       "Mike Johnson",
		Age:        32,
		ProfilePic: "https://randomuser.me/api/portraits/men/77.jpg",
		Location:   "Goa, India",
		Bio:        "Backend Specialist. Enjoys adventure sports, beaches, and vibrant nightlife.",
		Interests:  []string{"Adventure", "Beach", "Nightlife", "Sports"},
		Gender:     "Male",
		Race:       []string{"Black"},
		Religion:   []string{"Christianity"},
		PhotoDump: []string{
			"https://picsum.photos/seed/mike1/400/300",
			"https://picsum.photos/seed/mike2/400/300",
			"https://picsum.photos/seed/mike3/400/300",
		},
	},
	{
		ID:         "dev-sara",
		Name:       "Sara Lee",
		Age:        29,
		ProfilePic: "https://randomuser.me/api/portraits/women/78.jpg",
		Location:   "Bangalore, India",
		Bio:        "QA Engineer. A true foodie who loves exploring local markets and culinary experiences.",
		Interests:  []string{"Foodie", "Local Markets", "Cultural", "Shopping"},
		Gender:     "Female",
		Race:       []string{"Asian"},
		Religion:   []string{"Buddhism"},
		PhotoDump: []string{
			"https://picsum.photos/seed/sara1/400/300",
			"https://picsum.photos/seed/sara2/400/300",
			"https://picsum.photos/seed/sara3/400/300",
		},
	},
}

// defaultGenerationCategories applies when no place-type filter is active.
var defaultGenerationCategories = []string{
	"Cultural", "Scenic", "Historic", "Foodie", "Adventure", "Shopping", "Urban", "Beach",
}

// allIndianCities is the generation fallback when no location filter is
// active.
var allIndianCities = []string{
	"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Kolkata", "Pune",
	"Ahmedabad", "Goa", "Jaipur", "Lucknow", "Kanpur", "Nagpur", "Indore",
	"Thane", "Bhopal", "Visakhapatnam", "Pimpri", "Patna", "Vadodara",
	"Ghaziabad", "Ludhiana", "Agra", "Nashik", "Faridabad", "Meerut", "Rajkot",
	"Kalyan", "Vasai", "Varanasi", "Srinagar", "Aurangabad", "Dhanbad",
	"Amritsar", "Navi", "Allahabad", "Ranchi", "Howrah", "Coimbatore",
	"Jabalpur", "Gwalior", "Vijayawada", "Madurai", "Raipur", "Kota",
	"Chandigarh", "Guwahati", "Solapur", "Hubli", "Tiruchirappalli",
	"Bareilly", "Mysore", "Tiruppur", "Gurgaon", "Aligarh", "Jalandhar",
	"Bhubaneswar", "Salem", "Warangal", "Guntur", "Bhiwandi", "Saharanpur",
	"Gorakhpur", "Bikaner", "Amravati", "Noida", "Jamshedpur", "Bhilai",
	"Cuttack", "Firozabad", "Kochi", "Nellore", "Bhavnagar", "Dehradun",
	"Durgapur", "Asansol", "Rourkela", "Nanded", "Kolhapur", "Ajmer", "Akola",
	"Gulbarga", "Jamnagar", "Ujjain", "Loni", "Siliguri", "Jhansi",
	"Ulhasnagar", "Jammu", "Sangli", "Mangalore", "Erode", "Belgaum",
	"Ambattur", "Tirunelveli", "Malegaon", "Gaya", "Jalgaon", "Udaipur",
	"Maheshtala",
}

// SeedDestinations returns a copy of the seed metadata.
func SeedDestinations() []model.Destination {
	out := make([]model.Destination, len(seedDestinations))
	copy(out, seedDestinations)
	return out
}

// SeedProfiles returns a copy of the initial profiles.
func SeedProfiles() []model.UserProfile {
	out := make([]model.UserProfile, len(seedProfiles))
	copy(out, seedProfiles)
	return out
}
