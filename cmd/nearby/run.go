package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gompa/internal/config"
	"gompa/internal/infra"
	"gompa/internal/models/place_models"
	"gompa/internal/models/response_models"
	"gompa/internal/services"
	"gompa/pkg/geo"
	"gompa/pkg/metrics"
)

var (
	configPath string
	verbose    bool

	nearbyFlags struct {
		landmark string
		lat, lng float64
		category string
		radius   float64
		limit    int
		keyword  string
		wait     time.Duration
		count    bool
		json     bool
	}
)

var landmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "List the built-in landmarks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lms, err := services.NewStaticLandmarkService(infra.DefaultLandmarks).List(cmd.Context(), "")
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDISTRICT\tLAT,LNG")
		for _, lm := range lms {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.4f,%.4f\n", lm.ID, lm.Name, lm.District, lm.Latitude, lm.Longitude)
		}
		return w.Flush()
	},
}

// pipeline is the nearby stack assembled without the HTTP server or database.
type pipeline struct {
	nearby   services.NearbyServiceInterface
	enricher *services.Enricher
	sessions *services.SessionStore
	logger   *zap.Logger
}

func newPipeline() (*pipeline, error) {
	_ = config.LoadDotEnv()

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	path := configPath
	if path == "" {
		path = config.GetEnvWithDefault("PLACES_CONFIG", "")
	}
	cfg, err := config.LoadPipelineConfig(path)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	google := services.NewGooglePlacesSource(services.GooglePlacesConfig{
		APIKey:  config.GetEnvWithDefault("GOOGLE_PLACES_API_KEY", ""),
		BaseURL: config.GetEnvWithDefault("GOOGLE_PLACES_URL", services.DefaultGooglePlacesURL),
		Timeout: cfg.SourceTimeout,
		Region:  cfg.Region,
	}, logger)
	osm := services.NewOSMSource(services.OverpassConfig{
		Endpoint: config.GetEnvWithDefault("OVERPASS_URL", services.DefaultOverpassEndpoint),
		Timeout:  cfg.SourceTimeout,
		Region:   cfg.Region,
	}, logger)
	enricher := services.NewEnricher(google, cfg, reg, logger)
	sessions := services.NewSessionStore(cfg.Session, reg)
	landmarks := services.NewStaticLandmarkService(infra.DefaultLandmarks)

	return &pipeline{
		nearby:   services.NewNearbyService(google, osm, landmarks, enricher, sessions, cfg, reg, logger),
		enricher: enricher,
		sessions: sessions,
		logger:   logger,
	}, nil
}

func (p *pipeline) close() {
	p.sessions.Shutdown()
	p.enricher.Wait()
	_ = p.logger.Sync()
}

func runNearby(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	req, err := nearbyRequest()
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	if nearbyFlags.count {
		if !cmd.Flags().Changed("category") {
			req.Category = ""
		}
		counts, err := p.nearby.Count(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(cmd, counts)
	}

	resp, err := p.nearby.Nearby(ctx, req)
	if err != nil {
		return err
	}
	if nearbyFlags.wait > 0 && resp.Enriching > 0 {
		if resp, err = waitForEnrichment(ctx, p.nearby, resp.SessionID, nearbyFlags.wait); err != nil {
			return err
		}
	}

	if nearbyFlags.json {
		return printJSON(cmd, resp)
	}
	printTable(cmd, resp)
	return nil
}

func nearbyRequest() (services.NearbyRequest, error) {
	req := services.NearbyRequest{
		LandmarkID: nearbyFlags.landmark,
		RadiusKm:   nearbyFlags.radius,
		Limit:      nearbyFlags.limit,
		Keyword:    nearbyFlags.keyword,
		ClientKey:  "cli",
	}
	cat, ok := place_models.ParseCategory(nearbyFlags.category)
	if !ok {
		return req, fmt.Errorf("unknown category %q", nearbyFlags.category)
	}
	req.Category = cat
	if req.LandmarkID == "" {
		origin := geo.Point{Lat: nearbyFlags.lat, Lng: nearbyFlags.lng}
		if !origin.Valid() {
			return req, fmt.Errorf("either --landmark or a valid --lat/--lng is required")
		}
		req.Origin = &origin
	}
	return req, nil
}

// waitForEnrichment follows the session until nothing is enriching or the
// timeout passes, then returns the latest snapshot.
func waitForEnrichment(ctx context.Context, nearby services.NearbyServiceInterface, sessionID string,
	timeout time.Duration) (*response_models.NearbyResponse, error) {
	events, unsubscribe, err := nearby.Subscribe(sessionID)
	if err != nil {
		return nil, err
	}
	defer unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		snap, err := nearby.Snapshot(sessionID)
		if err != nil {
			return nil, err
		}
		if snap.Enriching == 0 {
			return snap, nil
		}
		select {
		case _, ok := <-events:
			if !ok {
				return nearby.Snapshot(sessionID)
			}
		case <-timer.C:
			return snap, nil
		case <-ctx.Done():
			return snap, nil
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(cmd *cobra.Command, resp *response_models.NearbyResponse) {
	out := cmd.OutOrStdout()
	if resp.Landmark.Name != "" {
		fmt.Fprintf(out, "%s near %s (%g km)\n", resp.Category, resp.Landmark.Name, resp.RadiusKm)
	}
	if resp.Count == 0 {
		fmt.Fprintln(out, resp.Message)
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tKM\tRATING\tPRICE\tCONTACT\tSOURCES")
	for _, pl := range resp.Places {
		contact := pl.Contact.Phone
		if contact == "" {
			contact = "search"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.1f\t₹%d\t%s\t%v\n",
			pl.Name, pl.KindLabel, pl.DistanceKm, pl.Rating, pl.PriceINR, contact, pl.Sources)
	}
	_ = w.Flush()
	if resp.Enriching > 0 {
		fmt.Fprintf(out, "%d place(s) still enriching\n", resp.Enriching)
	}
}
