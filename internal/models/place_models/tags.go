package place_models

import (
	"strconv"
	"strings"
)

// BuildAddress assembles a postal address from OSM addr:* tags.
func BuildAddress(tags map[string]string) string {
	if tags == nil {
		return ""
	}
	if full := strings.TrimSpace(tags["addr:full"]); full != "" {
		return full
	}

	num := tags["addr:housenumber"]
	street := firstTag(tags, "addr:street", "addr:road")
	area := firstTag(tags, "addr:place", "addr:suburb", "addr:neighbourhood")
	city := tags["addr:city"]

	var parts []string
	switch {
	case num != "" && street != "":
		parts = append(parts, num+" "+street)
	case street != "":
		parts = append(parts, street)
	}
	if area != "" {
		parts = append(parts, area)
	}
	if city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}

// Locality is the town or area a place belongs to, from its tags.
func Locality(tags map[string]string) string {
	return firstTag(tags, "addr:city", "addr:place", "addr:suburb", "addr:town")
}

func TagPhone(tags map[string]string) string {
	return firstTag(tags, "phone", "contact:phone")
}

// Amenities lists the guest-facing facilities the tags advertise.
func Amenities(tags map[string]string) []string {
	if tags == nil {
		return nil
	}
	var out []string
	if tags["internet_access"] != "" && tags["internet_access"] != "no" || tags["wifi"] == "yes" {
		out = append(out, "WiFi")
	}
	if tags["restaurant"] == "yes" || tags["cuisine"] != "" {
		out = append(out, "Restaurant")
	}
	if tags["spa"] == "yes" {
		out = append(out, "Spa")
	}
	if tags["view"] != "" || tags["view:mountain"] != "" {
		out = append(out, "Mountain View")
	}
	return out
}

// Cuisine renders at most two cuisines, "tibetan;nepali;indian" -> "tibetan & nepali".
func Cuisine(tags map[string]string) string {
	raw := tags["cuisine"]
	if raw == "" {
		return ""
	}
	var parts []string
	for _, p := range strings.Split(raw, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " & ")
}

// Stars returns the tourism star rating, if tagged.
func Stars(tags map[string]string) (float64, bool) {
	s := strings.TrimSpace(tags["stars"])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToUpper(s), "S"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(tags[k]); v != "" {
			return v
		}
	}
	return ""
}
