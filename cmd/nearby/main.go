package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Nearby places around Sikkim monasteries",
	Long: `Query both place sources around a monastery or a coordinate, merge the
results and optionally wait for contact enrichment to finish.

Examples:
  nearby --landmark rumtek --category dining
  nearby --lat 27.2951 --lng 88.2158 --category lodging --radius 3 --wait 10s
  nearby landmarks`,
	SilenceUsage: true,
	RunE:         runNearby,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&nearbyFlags.landmark, "landmark", "", "landmark id or alias (e.g. rumtek)")
	f.Float64Var(&nearbyFlags.lat, "lat", 0, "origin latitude")
	f.Float64Var(&nearbyFlags.lng, "lng", 0, "origin longitude")
	f.StringVar(&nearbyFlags.category, "category", "dining", "dining | lodging | attraction | transit")
	f.Float64Var(&nearbyFlags.radius, "radius", 0, "search radius in km (default from config)")
	f.IntVar(&nearbyFlags.limit, "limit", 0, "maximum results")
	f.StringVar(&nearbyFlags.keyword, "keyword", "", "keyword for the commercial source")
	f.DurationVar(&nearbyFlags.wait, "wait", 0, "wait up to this long for contact enrichment")
	f.BoolVar(&nearbyFlags.count, "count", false, "print per-category counts instead of places")
	f.BoolVar(&nearbyFlags.json, "json", false, "print the JSON response")
	rootCmd.MarkFlagsMutuallyExclusive("landmark", "lat")
	rootCmd.MarkFlagsRequiredTogether("lat", "lng")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "pipeline YAML (overrides PLACES_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(landmarksCmd)
}
