// Package config is the CLI configuration layer: flag.FlagSet for the
// values a human picks per run, validator.v10 struct tags for the
// constraints those values must satisfy, the same validation style used
// for HTTP request bodies in pkg/server/mm_rest/handlers.go.
package config

import (
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the tunables for a single OSM ingestion + intersection
// analysis run.
type Config struct {
	PBFPath             string  `validate:"required"`
	EdgeStorePath       string  `validate:"required"`
	RestrictionDBPath   string  `validate:"required"`
	PriorityDistinction float64 `validate:"gte=1"`
	MaxLaneCount        uint8   `validate:"gte=1,lte=20"`
	HTTPAddr            string  `validate:"required"`
	Serve               bool    `validate:"-"`
	Node                int64   `validate:"-"`
}

// Parse reads CLI flags from args into a Config and validates it. args
// should be os.Args[1:]; name is the program name shown in usage output.
func Parse(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	cfg := Config{}
	fs.StringVar(&cfg.PBFPath, "pbf", "", "path to the .osm.pbf extract to ingest")
	fs.StringVar(&cfg.EdgeStorePath, "edge-store", "./data/edges", "pebble directory for compressed edge geometry")
	fs.StringVar(&cfg.RestrictionDBPath, "restriction-db", "./data/restrictions", "badger directory for turn restrictions")
	fs.Float64Var(&cfg.PriorityDistinction, "priority-distinction-factor", 2.0, "minimum priority ratio for a road to look obviously more important than another")
	maxLanes := fs.Uint("max-lane-count", 8, "lane count the representative-coordinate lookahead distance is clamped to when scaling by an intersection's lane count")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "127.0.0.1:8089", "address for the debug HTTP endpoint")
	fs.BoolVar(&cfg.Serve, "serve", false, "serve the debug HTTP endpoint instead of printing a single view")
	fs.Int64Var(&cfg.Node, "node", -1, "print the intersection view at this node's first incoming edge and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.MaxLaneCount = uint8(*maxLanes)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
