package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/hpv-prevention/backend/internal/adapters/events"
	"github.com/zatekoja/hpv-prevention/backend/internal/bootstrap"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	"github.com/zatekoja/hpv-prevention/backend/pkg/config"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

func main() {
	var (
		location string
		limit    int
		asJSON   bool
		explain  bool
		watch    bool
	)
	flag.StringVar(&location, "location", "", "city name, PIN code or address to search around")
	flag.IntVar(&limit, "limit", 0, "maximum facilities to list (defaults to OVERPASS_RESULT_LIMIT)")
	flag.BoolVar(&asJSON, "json", false, "print the search result as JSON")
	flag.BoolVar(&explain, "explain", false, "print the scoring rules that matched each facility")
	flag.BoolVar(&watch, "watch", false, "stream search events published by the API instead of searching")
	flag.Parse()

	if location == "" {
		location = strings.Join(flag.Args(), " ")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("hpv-finder", "development")

	if limit > 0 {
		cfg.Overpass.ResultLimit = limit
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watch {
		if err := watchSearches(ctx, cfg, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("failed to watch search events")
		}
		return
	}

	finder, err := bootstrap.FinderService(cfg, bootstrap.Dependencies{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize finder")
	}

	result, err := finder.FindNearby(ctx, location)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			fmt.Fprintln(os.Stderr, appErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal().Err(err).Msg("failed to encode result")
		}
		return
	}

	printResult(os.Stdout, result, explain)
}

// printResult writes a ranked table. With explain set each row is followed
// by the rules that awarded its priority.
func printResult(w io.Writer, result *entities.FacilitySearchResult, explain bool) {
	if result.Status == entities.SearchStatusNoResults {
		fmt.Fprintf(w, "No healthcare facilities found near %q\n", result.Location)
		for _, s := range result.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
		return
	}

	fmt.Fprintf(w, "Found %d healthcare facilities near %s", result.Count, result.Location)
	if result.ResolvedName != "" {
		fmt.Fprintf(w, " (%s)", result.ResolvedName)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRIORITY\tDIST(km)\tTYPE\tNAME\tPHONE")
	for i, f := range result.Facilities {
		name := f.Name
		if f.IsGovernment {
			name += " [GOVT]"
		}
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%s\t%s\t%s\n", i+1, f.Priority, f.DistanceKm, f.Type, name, f.DisplayPhone())
	}
	tw.Flush()

	if !explain {
		return
	}
	fmt.Fprintln(w)
	for i, f := range result.Facilities {
		parts := make([]string, 0, len(f.PriorityBasis))
		for _, c := range f.PriorityBasis {
			parts = append(parts, fmt.Sprintf("%s +%d", c.Rule, c.Points))
		}
		fmt.Fprintf(w, "%d. %s: %s\n", i+1, f.Name, strings.Join(parts, ", "))
	}
}

// watchSearches prints search events from the configured channel until ctx
// is cancelled.
func watchSearches(ctx context.Context, cfg *config.Config, w io.Writer) error {
	client, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()

	bus := events.NewRedisEventBus(client.Client())
	defer bus.Close()

	ch, err := bus.Subscribe(ctx, cfg.Events.Channel)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Watching %s (Ctrl-C to stop)\n", cfg.Events.Channel)
	for event := range ch {
		printEvent(w, event)
	}
	return nil
}

func printEvent(w io.Writer, event *entities.SearchEvent) {
	line := fmt.Sprintf("%s  %-10s %-24q results=%d latency=%dms",
		event.CreatedAt.Local().Format(time.TimeOnly), event.Status, event.Query, event.ResultCount, event.LatencyMs)
	if event.ErrorType != "" {
		line += " error=" + event.ErrorType
	}
	fmt.Fprintln(w, line)
}
