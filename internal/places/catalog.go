package places

import (
	"slices"

	"github.com/pkordes/waypoint/internal/domain"
)

// categoryTypes lists the provider place types searched for each activity
// category, most specific first. Autocomplete accepts at most five.
var categoryTypes = map[domain.Category][]string{
	domain.CategoryAccommodation:  {"lodging", "hotel", "hostel", "campground", "rv_park"},
	domain.CategoryTransportation: {"airport", "train_station", "bus_station", "transit_station", "ferry_terminal"},
	domain.CategoryFood:           {"restaurant", "cafe", "bar", "bakery", "meal_takeaway"},
	domain.CategoryLeisure:        {"tourist_attraction", "museum", "park", "art_gallery", "amusement_park"},
}

// knownTypes is the set of place types the gateway will forward.
var knownTypes = func() map[string]struct{} {
	extra := []string{
		// accommodation
		"motel", "bed_and_breakfast", "guest_house", "resort_hotel", "cottage",
		// transportation
		"subway_station", "light_rail_station", "car_rental", "taxi_stand",
		"bus_stop", "parking", "gas_station", "electric_vehicle_charging_station",
		// food
		"coffee_shop", "fast_food_restaurant", "ice_cream_shop", "pizza_restaurant",
		"seafood_restaurant", "vegetarian_restaurant", "pub", "wine_bar",
		// leisure
		"zoo", "aquarium", "beach", "national_park", "hiking_area", "marina",
		"night_club", "movie_theater", "shopping_mall", "spa", "stadium",
		"historical_landmark", "visitor_center", "church", "library",
	}
	set := make(map[string]struct{})
	for _, types := range categoryTypes {
		for _, t := range types {
			set[t] = struct{}{}
		}
	}
	for _, t := range extra {
		set[t] = struct{}{}
	}
	return set
}()

// IsKnownType reports whether t is a place type the gateway accepts.
func IsKnownType(t string) bool {
	_, ok := knownTypes[t]
	return ok
}

// KnownTypes returns every accepted place type, sorted.
func KnownTypes() []string {
	out := make([]string, 0, len(knownTypes))
	for t := range knownTypes {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TypesForCategory returns the place types to filter on when searching for
// an activity of category c. CategoryOther has no filter and returns nil.
func TypesForCategory(c domain.Category) []string {
	return slices.Clone(categoryTypes[c])
}
