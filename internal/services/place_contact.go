package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
)

const (
	ContactCall   = "call"
	ContactSearch = "search"
)

// ContactAction is what the client does when the user taps "call".
type ContactAction struct {
	Kind  string
	Href  string
	Phone string
}

var nonDialable = regexp.MustCompile(`[^+\d]`)

func TelHref(phone string) string {
	digits := nonDialable.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}
	return "tel:" + digits
}

// SearchHref is the web search used when no phone number is known.
func SearchHref(name, locality string) string {
	q := strings.TrimSpace(strings.Join([]string{name, locality, "contact number"}, " "))
	return "https://www.google.com/search?q=" + url.QueryEscape(q)
}

func MapHref(p geo.Point) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%.6f,%.6f", p.Lat, p.Lng)
}

func ContactFor(m place_models.MergedPlace) ContactAction {
	if href := TelHref(m.Phone); href != "" {
		return ContactAction{Kind: ContactCall, Href: href, Phone: m.Phone}
	}
	name := m.Name
	if !place_models.HasName(name) {
		name = place_models.KindLabel(m.Kind)
	}
	locality := m.Locality
	if locality == "" {
		locality = "Sikkim"
	}
	return ContactAction{Kind: ContactSearch, Href: SearchHref(name, locality)}
}
