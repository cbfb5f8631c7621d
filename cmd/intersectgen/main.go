package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/arimbawa-w/roadisect/pkg/config"
	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/debugapi"
	"github.com/arimbawa-w/roadisect/pkg/intersection"
	"github.com/arimbawa-w/roadisect/pkg/osmingest"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/edgestore"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/restriction"
)

func main() {
	cfg, err := config.Parse("intersectgen", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	edgeStore, err := edgestore.Open(cfg.EdgeStorePath)
	if err != nil {
		log.Fatalf("intersectgen: opening edge store: %v", err)
	}
	defer edgeStore.Close()

	restrictionIndex, err := restriction.Open(cfg.RestrictionDBPath)
	if err != nil {
		log.Fatalf("intersectgen: opening restriction index: %v", err)
	}
	defer restrictionIndex.Close()

	datastructure.PriorityDistinctionFactor = cfg.PriorityDistinction
	intersection.MaxLaneCountForLookahead = cfg.MaxLaneCount

	result, err := osmingest.Ingest(ctx, cfg.PBFPath, edgeStore, restrictionIndex)
	if err != nil {
		log.Fatalf("intersectgen: ingesting %s: %v", cfg.PBFPath, err)
	}
	fmt.Printf("ingested %d nodes, %d edges from %s\n", result.Graph.NumNodes(), result.Graph.NumEdges(), cfg.PBFPath)

	collab := intersection.Collaborators{
		Graph:        result.Graph,
		Edges:        edgeStore,
		Nodes:        result.Coordinates,
		Restrictions: restrictionIndex,
		Barriers:     result.Barriers,
	}
	gen := intersection.NewGenerator(collab)

	if cfg.Serve {
		serveDebugAPI(cfg.HTTPAddr, gen, result)
		return
	}

	printNodeView(ctx, gen, result, cfg.Node)
}

func printNodeView(ctx context.Context, gen *intersection.Generator, result *osmingest.Result, node int64) {
	if node < 0 || node >= int64(result.Graph.NumNodes()) {
		log.Fatalf("intersectgen: -node must name a node between 0 and %d", result.Graph.NumNodes()-1)
	}

	via := datastructure.NodeID(node)
	incoming := datastructure.InvalidEdgeID
	for _, out := range result.Graph.AdjacentEdges(via) {
		if back := result.Graph.FindEdge(result.Graph.Target(out), via); back.Valid() {
			incoming = back
			break
		}
	}
	if !incoming.Valid() {
		log.Fatalf("intersectgen: node %d has no incoming road", node)
	}

	view, err := gen.GetConnectedRoads(ctx, incoming)
	if err != nil {
		log.Fatalf("intersectgen: get connected roads: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		log.Fatalf("intersectgen: encoding view: %v", err)
	}
}

func serveDebugAPI(addr string, gen *intersection.Generator, result *osmingest.Result) {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	debugapi.Router(r, gen, result.Graph, result.Coordinates)

	fmt.Printf("debug endpoint listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
