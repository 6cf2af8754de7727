package rating

// Tier is a display rating band, distinct from the delta tiers in Delta.
type Tier struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	MinRating int    `json:"minRating"`
}

// tiers is ordered highest first; thresholds are inclusive lower bounds.
var tiers = []Tier{
	{Name: "Dracarys", Color: "red", MinRating: 2500},
	{Name: "Targaryen", Color: "purple", MinRating: 2000},
	{Name: "Lannister", Color: "yellow", MinRating: 1700},
	{Name: "Stark", Color: "blue", MinRating: 1500},
	{Name: "Baratheon", Color: "amber", MinRating: 1250},
}

// unranked is the catch-all below the lowest named tier.
var unranked = Tier{Name: "Unranked", Color: "gray", MinRating: 0}

// TierFor returns the highest tier whose threshold the rating meets.
func TierFor(rating int) Tier {
	for _, t := range tiers {
		if rating >= t.MinRating {
			return t
		}
	}
	return unranked
}
