package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gompa/internal/models/place_models"
	"gompa/pkg/geo"
)

// PricingConfig drives the display price of one category.
type PricingConfig struct {
	// TierPrices is indexed by price level 0..4.
	TierPrices []int `yaml:"tier_prices"`
	// KindBase overrides DefaultBase for a kind ("hotel", "homestay").
	KindBase    map[string]int `yaml:"kind_base"`
	DefaultBase int            `yaml:"default_base"`
	// PerKm adds a distance component (transit fares).
	PerKm     float64 `yaml:"per_km"`
	JitterMin float64 `yaml:"jitter_min"`
	JitterMax float64 `yaml:"jitter_max"`
	// GoogleOnlyJitter* replace the band for places no other source reported.
	GoogleOnlyJitterMin float64 `yaml:"google_only_jitter_min"`
	GoogleOnlyJitterMax float64 `yaml:"google_only_jitter_max"`
	MinPrice            int     `yaml:"min_price"`
	// DefaultRating is shown when neither a rating nor OSM stars exist.
	DefaultRating float64 `yaml:"default_rating"`
}

type CategoryConfig struct {
	// MatchThresholdKm bounds the proximity match between sources.
	MatchThresholdKm float64       `yaml:"match_threshold_km"`
	ExcludeUnnamed   bool          `yaml:"exclude_unnamed"`
	EnrichLimit      int           `yaml:"enrich_limit"`
	Pricing          PricingConfig `yaml:"pricing"`
}

type EnrichmentConfig struct {
	TaskTimeout    time.Duration `yaml:"task_timeout"`
	LookupRadiusKm float64       `yaml:"lookup_radius_km"`
}

type SessionConfig struct {
	TTL         time.Duration `yaml:"ttl"`
	MaxSessions int           `yaml:"max_sessions"`
}

type PipelineConfig struct {
	Region          geo.BBox                                   `yaml:"region"`
	RegionHints     []string                                   `yaml:"region_hints"`
	DefaultRadiusKm float64                                    `yaml:"default_radius_km"`
	MaxRadiusKm     float64                                    `yaml:"max_radius_km"`
	ResultLimit     int                                        `yaml:"result_limit"`
	SourceTimeout   time.Duration                              `yaml:"source_timeout"`
	Categories      map[place_models.Category]CategoryConfig `yaml:"categories"`
	Enrichment      EnrichmentConfig                           `yaml:"enrichment"`
	Session         SessionConfig                              `yaml:"session"`
}

// SikkimHints are place names expected in addresses inside the region.
var SikkimHints = []string{
	"sikkim", "gangtok", "namchi", "gyalshing", "geyzing", "mangan", "pakyong", "soreng",
	"ravangla", "rabongla", "rumtek", "tashiding", "pelling", "yuksom", "lachung", "lachen",
	"rinchenpong", "rangpo", "dentam", "namthang", "rhenock", "nayabazar",
}

// SikkimDistricts are coarse district boxes; their union is the service region.
var SikkimDistricts = map[string]geo.BBox{
	"East Sikkim":  {South: 27.10, West: 88.45, North: 27.60, East: 88.95},
	"West Sikkim":  {South: 27.05, West: 88.00, North: 27.55, East: 88.40},
	"North Sikkim": {South: 27.45, West: 88.25, North: 28.15, East: 88.95},
	"South Sikkim": {South: 27.05, West: 88.20, North: 27.40, East: 88.55},
}

func DefaultPipelineConfig() PipelineConfig {
	boxes := make([]geo.BBox, 0, len(SikkimDistricts))
	for _, b := range SikkimDistricts {
		boxes = append(boxes, b)
	}
	return PipelineConfig{
		Region:          geo.Union(boxes...),
		RegionHints:     append([]string(nil), SikkimHints...),
		DefaultRadiusKm: 5,
		MaxRadiusKm:     50,
		ResultLimit:     20,
		SourceTimeout:   12 * time.Second,
		Categories: map[place_models.Category]CategoryConfig{
			place_models.CategoryDining: {
				MatchThresholdKm: 2.5,
				ExcludeUnnamed:   true,
				EnrichLimit:      12,
				Pricing: PricingConfig{
					TierPrices:  []int{300, 500, 800, 1200, 1800},
					DefaultBase: 800,
					JitterMin:   0.88,
					JitterMax:   1.22,
					MinPrice:    150,

					GoogleOnlyJitterMin: 0.95,
					GoogleOnlyJitterMax: 1.15,
				},
			},
			place_models.CategoryLodging: {
				MatchThresholdKm: 0.3,
				ExcludeUnnamed:   false,
				EnrichLimit:      12,
				Pricing: PricingConfig{
					TierPrices:  []int{1000, 1500, 2500, 3500, 6000},
					KindBase:    map[string]int{"hotel": 3500, "homestay": 1500},
					DefaultBase: 3500,
					JitterMin:   0.88,
					JitterMax:   1.22,
					MinPrice:    500,
				},
			},
			place_models.CategoryAttraction: {
				MatchThresholdKm: 0.5,
				ExcludeUnnamed:   true,
				EnrichLimit:      12,
				Pricing: PricingConfig{
					DefaultBase: 1200,
					JitterMin:   0.9,
					JitterMax:   1.25,
					MinPrice:    250,

					DefaultRating: 4.5,
				},
			},
			place_models.CategoryTransit: {
				MatchThresholdKm: 0.2,
				ExcludeUnnamed:   true,
				EnrichLimit:      8,
				Pricing: PricingConfig{
					DefaultBase: 60,
					PerKm:       15,
					JitterMin:   0.95,
					JitterMax:   1.1,
					MinPrice:    60,
				},
			},
		},
		Enrichment: EnrichmentConfig{
			TaskTimeout:    8 * time.Second,
			LookupRadiusKm: 7,
		},
		Session: SessionConfig{
			TTL:         30 * time.Minute,
			MaxSessions: 10000,
		},
	}
}

// Category returns the settings for c, falling back to dining's.
func (p PipelineConfig) Category(c place_models.Category) CategoryConfig {
	if cc, ok := p.Categories[c]; ok {
		return cc
	}
	return p.Categories[place_models.CategoryDining]
}

// LoadPipelineConfig reads a YAML override file on top of the defaults.
// An empty path returns the defaults.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read pipeline config: %w", err)
	}

	var override PipelineConfig
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return cfg, fmt.Errorf("parse pipeline config %s: %w", path, err)
	}
	// Booleans are read again as pointers so an explicit false is visible.
	var flags categoryFlags
	if err := yaml.Unmarshal(raw, &flags); err != nil {
		return cfg, fmt.Errorf("parse pipeline config %s: %w", path, err)
	}

	cfg = mergePipelineConfig(cfg, override)
	for cat, f := range flags.Categories {
		if f.ExcludeUnnamed != nil {
			cc := cfg.Categories[cat]
			cc.ExcludeUnnamed = *f.ExcludeUnnamed
			cfg.Categories[cat] = cc
		}
	}
	return cfg, nil
}

type categoryFlags struct {
	Categories map[place_models.Category]struct {
		ExcludeUnnamed *bool `yaml:"exclude_unnamed"`
	} `yaml:"categories"`
}

func mergePipelineConfig(base, o PipelineConfig) PipelineConfig {
	if !o.Region.IsZero() {
		base.Region = o.Region
	}
	if o.RegionHints != nil {
		base.RegionHints = o.RegionHints
	}
	if o.DefaultRadiusKm > 0 {
		base.DefaultRadiusKm = o.DefaultRadiusKm
	}
	if o.MaxRadiusKm > 0 {
		base.MaxRadiusKm = o.MaxRadiusKm
	}
	if o.ResultLimit > 0 {
		base.ResultLimit = o.ResultLimit
	}
	if o.SourceTimeout > 0 {
		base.SourceTimeout = o.SourceTimeout
	}
	if o.Enrichment.TaskTimeout > 0 {
		base.Enrichment.TaskTimeout = o.Enrichment.TaskTimeout
	}
	if o.Enrichment.LookupRadiusKm > 0 {
		base.Enrichment.LookupRadiusKm = o.Enrichment.LookupRadiusKm
	}
	if o.Session.TTL > 0 {
		base.Session.TTL = o.Session.TTL
	}
	if o.Session.MaxSessions > 0 {
		base.Session.MaxSessions = o.Session.MaxSessions
	}

	for cat, oc := range o.Categories {
		bc := base.Categories[cat]
		if oc.MatchThresholdKm > 0 {
			bc.MatchThresholdKm = oc.MatchThresholdKm
		}
		if oc.EnrichLimit > 0 {
			bc.EnrichLimit = oc.EnrichLimit
		}
		bc.Pricing = mergePricing(bc.Pricing, oc.Pricing)
		base.Categories[cat] = bc
	}
	return base
}

func mergePricing(b, o PricingConfig) PricingConfig {
	if len(o.TierPrices) > 0 {
		b.TierPrices = o.TierPrices
	}
	if len(o.KindBase) > 0 {
		b.KindBase = o.KindBase
	}
	if o.DefaultBase > 0 {
		b.DefaultBase = o.DefaultBase
	}
	if o.PerKm > 0 {
		b.PerKm = o.PerKm
	}
	if o.JitterMin > 0 {
		b.JitterMin = o.JitterMin
	}
	if o.JitterMax > 0 {
		b.JitterMax = o.JitterMax
	}
	if o.GoogleOnlyJitterMin > 0 {
		b.GoogleOnlyJitterMin = o.GoogleOnlyJitterMin
	}
	if o.GoogleOnlyJitterMax > 0 {
		b.GoogleOnlyJitterMax = o.GoogleOnlyJitterMax
	}
	if o.MinPrice > 0 {
		b.MinPrice = o.MinPrice
	}
	if o.DefaultRating > 0 {
		b.DefaultRating = o.DefaultRating
	}
	return b
}
