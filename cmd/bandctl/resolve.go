package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bandseeking/bandseeking-go/internal/app"
	"github.com/bandseeking/bandseeking-go/internal/config"
	"github.com/bandseeking/bandseeking-go/internal/location"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var resolveTimeout time.Duration

var resolveCmd = &cobra.Command{
	Use:   "resolve <zip>...",
	Short: "Resolve postal codes to \"City, State\"",
	Long: `Resolve each postal code through the static table, the shared cache (when
REDIS_ENABLED is set) and the geocoder. Codes that cannot be resolved are
printed unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", 30*time.Second, "overall timeout")
}

type resolveResult struct {
	ZipCode  string `json:"zip_code"`
	Display  string `json:"display"`
	Resolved bool   `json:"resolved"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), resolveTimeout)
	defer cancel()

	geocoder := app.NewGeocoder(cfg.Geocoding, logger)
	resolver, _, closer, err := app.NewResolver(ctx, cfg, geocoder, logger)
	if err != nil {
		return fmt.Errorf("failed to build resolver: %w", err)
	}
	defer closer()

	// the geocoder's rate limiter paces these
	results := make([]resolveResult, len(args))
	p := pool.New().WithMaxGoroutines(4)
	for i, zip := range args {
		p.Go(func() {
			display := resolver.ResolveWait(ctx, zip)
			results[i] = resolveResult{
				ZipCode:  zip,
				Display:  display,
				Resolved: location.IsPostalCode(zip) && display != zip,
			}
		})
	}
	p.Wait()

	return writeJSON(cmd.OutOrStdout(), results)
}
