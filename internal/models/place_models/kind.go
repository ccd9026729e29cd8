package place_models

import "strings"

const (
	KindHotel      = "hotel"
	KindHomestay   = "homestay"
	KindRestaurant = "restaurant"
	KindCafe       = "cafe"
	KindExperience = "experience"
	KindTaxi       = "taxi"
	KindBus        = "bus"
)

// InferKind narrows a category using the name, OSM tags and Google types.
func InferKind(cat Category, name string, tags map[string]string, types []string) string {
	nameL := strings.ToLower(name)
	switch cat {
	case CategoryLodging:
		if tags["amenity"] == "homestay" || tags["tourism"] == "guest_house" ||
			strings.Contains(nameL, "homestay") || strings.Contains(nameL, "home stay") ||
			strings.Contains(nameL, "home-stay") || strings.Contains(nameL, "guest house") {
			return KindHomestay
		}
		return KindHotel
	case CategoryDining:
		if tags["amenity"] == "cafe" || hasType(types, "cafe") || strings.Contains(nameL, "cafe") {
			return KindCafe
		}
		return KindRestaurant
	case CategoryTransit:
		if tags["amenity"] == "bus_station" || tags["highway"] == "bus_stop" || hasType(types, "bus_station") ||
			strings.Contains(nameL, "bus") {
			return KindBus
		}
		return KindTaxi
	}
	return KindExperience
}

// KindLabel is the display label of a kind.
func KindLabel(kind string) string {
	switch kind {
	case KindHotel:
		return "Hotel"
	case KindHomestay:
		return "Homestay"
	case KindRestaurant:
		return "Restaurant"
	case KindCafe:
		return "Cafe"
	case KindTaxi:
		return "Taxi service"
	case KindBus:
		return "Bus station"
	}
	return "Experience"
}

func hasType(types []string, t string) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
