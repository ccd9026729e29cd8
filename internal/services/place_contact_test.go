package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
)

func TestContactFor(t *testing.T) {
	call := ContactFor(place_models.MergedPlace{Name: "Hill Cafe", Phone: "+91 (3592) 252-111"})
	assert.Equal(t, ContactAction{Kind: ContactCall, Href: "tel:+913592252111", Phone: "+91 (3592) 252-111"}, call)

	search := ContactFor(place_models.MergedPlace{Name: "Hill Cafe", Locality: "Rumtek"})
	assert.Equal(t, ContactSearch, search.Kind)
	assert.Equal(t, "https://www.google.com/search?q=Hill+Cafe+Rumtek+contact+number", search.Href)

	unnamed := ContactFor(place_models.MergedPlace{Name: place_models.UnnamedPlace, Kind: place_models.KindTaxi})
	assert.Contains(t, unnamed.Href, "Sikkim+contact+number")
	assert.NotContains(t, unnamed.Href, "Unnamed")
}

func TestTelHref_NoDigits(t *testing.T) {
	assert.Empty(t, TelHref("n/a"))
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=27.338900,88.558300", MapHref(geo.Point{Lat: 27.3389, Lng: 88.5583}))
}
