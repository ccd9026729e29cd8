package infra

import (
	"github.com/lib/pq"

	"gompa/internal/models/db_models"
)

// DefaultLandmarks are upserted on start.
var DefaultLandmarks = []db_models.Landmark{
	{ID: "rumtek", Name: "Rumtek Monastery", Location: "Rumtek, Gangtok", District: "East Sikkim", Lat: 27.3389, Lng: 88.5583, Category: "monastery", Aliases: pq.StringArray{"dharma-chakra-centre"}},
	{ID: "pemayangtse", Name: "Pemayangtse Monastery", Location: "Pelling, West Sikkim", District: "West Sikkim", Lat: 27.2951, Lng: 88.2158, Category: "monastery", Aliases: pq.StringArray{"pemiongchi", "pelling"}},
	{ID: "tashiding", Name: "Tashiding Monastery", Location: "Tashiding, West Sikkim", District: "West Sikkim", Lat: 27.3333, Lng: 88.2667, Category: "monastery", Aliases: pq.StringArray{"tashiding-gompa"}},
	{ID: "enchey", Name: "Enchey Monastery", Location: "Gangtok", District: "East Sikkim", Lat: 27.3333, Lng: 88.6167, Category: "monastery", Aliases: pq.StringArray{"enchey-gompa"}},
	{ID: "dubdi", Name: "Dubdi Monastery", Location: "Yuksom", District: "West Sikkim", Lat: 27.35, Lng: 88.2333, Category: "monastery", Aliases: pq.StringArray{"yuksom", "hermit-cell"}},
	{ID: "sangachoeling", Name: "Sangachoeling Monastery", Location: "Pelling", District: "West Sikkim", Lat: 27.3083, Lng: 88.2167, Category: "monastery", Aliases: pq.StringArray{"sanga-choeling"}},
}
