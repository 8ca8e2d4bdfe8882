// Package cmd provides the commands of the specsctl CLI.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/autospecs/internal/version"
	autospecs "github.com/kailas-cloud/autospecs/pkg/sdk"
)

// connection holds the persistent engine flags.
type connection struct {
	engines   []string
	username  string
	password  string
	primary   string
	secondary string
	joinField string
	timeout   time.Duration
	debug     bool
}

// api is the part of the SDK the commands use.
type api interface {
	Details(ctx context.Context, q autospecs.DetailsQuery) (autospecs.Envelope, error)
	Combinations(ctx context.Context, q autospecs.CombinationsQuery) (autospecs.Combinations, error)
	Lookup(ctx context.Context, field autospecs.FilterField, search string, limit int) (autospecs.FilterOptions, error)
}

// connectFunc opens the API for a command run.
type connectFunc func(ctx context.Context, conn connection, logger *slog.Logger) (api, error)

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command for specsctl.
func NewRootCmd() *cobra.Command {
	return newRootCmd(connectSDK)
}

func newRootCmd(connect connectFunc) *cobra.Command {
	var conn connection

	cmd := &cobra.Command{
		Use:   "specsctl",
		Short: "Query the vehicle specification index",
		Long: `specsctl runs vehicle searches directly against the search engine
and prints the same JSON the HTTP API returns.

Examples:
  specsctl details --models "Ford:Mustang" --h-body-class Coupe
  specsctl combinations --search coupe --size 10
  specsctl filters manufacturers --search for --limit 5`,
		Version:      version.Version,
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate("specsctl version " + version.String() + "\n")

	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&conn.engines, "engine", []string{envOr("AUTOSPECS_ENGINE", "http://localhost:9200")},
		"Search engine address (repeatable, env AUTOSPECS_ENGINE)")
	pf.StringVar(&conn.username, "username", os.Getenv("AUTOSPECS_ENGINE_USERNAME"), "Engine username")
	pf.StringVar(&conn.password, "password", os.Getenv("AUTOSPECS_ENGINE_PASSWORD"), "Engine password")
	pf.StringVar(&conn.primary, "index", "autos-unified", "Vehicle index")
	pf.StringVar(&conn.secondary, "instances-index", "autos-vins", "Per-instance index used for instance counts")
	pf.StringVar(&conn.joinField, "join-field", "vehicle_id", "Instance index field holding the vehicle id")
	pf.DurationVar(&conn.timeout, "timeout", 10*time.Second, "Engine request timeout")
	pf.BoolVar(&conn.debug, "debug", false, "Log SDK operations to stderr")

	cmd.AddCommand(newDetailsCmd(&conn, connect))
	cmd.AddCommand(newCombinationsCmd(&conn, connect))
	cmd.AddCommand(newFiltersCmd(&conn, connect))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// open builds the logger for a run and connects.
func open(cmd *cobra.Command, conn *connection, connect connectFunc) (api, error) {
	var logger *slog.Logger
	if conn.debug {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return connect(cmd.Context(), *conn, logger)
}

// sdkAPI adapts the SDK client to api.
type sdkAPI struct {
	client *autospecs.Client
}

func (a sdkAPI) Details(ctx context.Context, q autospecs.DetailsQuery) (autospecs.Envelope, error) {
	return a.client.Vehicles().Details(ctx, q)
}

func (a sdkAPI) Combinations(ctx context.Context, q autospecs.CombinationsQuery) (autospecs.Combinations, error) {
	return a.client.Vehicles().Combinations(ctx, q)
}

func (a sdkAPI) Lookup(
	ctx context.Context, field autospecs.FilterField, search string, limit int,
) (autospecs.FilterOptions, error) {
	return a.client.Filters().Lookup(ctx, field, search, limit)
}

func connectSDK(ctx context.Context, conn connection, logger *slog.Logger) (api, error) {
	client, err := autospecs.New(ctx,
		autospecs.WithEngine(conn.engines...),
		autospecs.WithBasicAuth(conn.username, conn.password),
		autospecs.WithIndices(conn.primary, conn.secondary),
		autospecs.WithJoinField(conn.joinField),
		autospecs.WithRequestTimeout(conn.timeout),
		autospecs.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return sdkAPI{client: client}, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
