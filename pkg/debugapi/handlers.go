// Package debugapi is a small HTTP surface for poking at intersection
// analysis results while developing against a loaded extract. It is a
// development aid, not a wire protocol the core depends on.
package debugapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/intersection"
)

// NearestNodeFinder is the H3-backed lookup described for C11; only this
// debug surface calls it, never the core.
type NearestNodeFinder interface {
	NearestNode(lat, lon float64) (datastructure.NodeID, error)
}

// RoadGraph is the subset of roadgraph.RoadGraph this handler needs to pick
// an arbitrary incoming edge for a node-only or lat/lon query.
type RoadGraph interface {
	AdjacentEdges(node datastructure.NodeID) []datastructure.EdgeID
	Source(edge datastructure.EdgeID) datastructure.NodeID
}

type Handler struct {
	gen    *intersection.Generator
	graph  RoadGraph
	nearby NearestNodeFinder
}

func Router(r *chi.Mux, gen *intersection.Generator, graph RoadGraph, nearby NearestNodeFinder) {
	h := &Handler{gen: gen, graph: graph, nearby: nearby}

	r.Route("/api/intersections", func(r chi.Router) {
		r.Get("/by-edge/{edgeID}", h.byEdge)
		r.Get("/by-location", h.byLocation)
	})
}

func (h *Handler) byEdge(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "edgeID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("edgeID must be an integer: %w", err)))
		return
	}

	h.renderView(w, r, datastructure.EdgeID(id))
}

// LocationQuery model info
type LocationQuery struct {
	Lat float64 `validate:"required,lt=90,gt=-90"`
	Lon float64 `validate:"required,lt=180,gt=-180"`
}

func (h *Handler) byLocation(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("lat and lon query params are required")))
		return
	}

	query := LocationQuery{Lat: lat, Lon: lon}
	validate := validator.New()
	if err := validate.Struct(query); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		render.Render(w, r, ErrValidation(err, translateError(err, trans)))
		return
	}

	node, err := h.nearby.NearestNode(lat, lon)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	edges := h.graph.AdjacentEdges(node)
	if len(edges) == 0 {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("nearest node %d has no adjacent roads", node)))
		return
	}

	h.renderView(w, r, edges[0])
}

func (h *Handler) renderView(w http.ResponseWriter, r *http.Request, fromEdge datastructure.EdgeID) {
	view, err := h.gen.GetConnectedRoads(r.Context(), fromEdge)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, view)
}

// ErrResponse model info
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: 400, StatusText: "Invalid request.", ErrorText: err.Error()}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: 500, StatusText: "Internal server error.", ErrorText: err.Error()}
}

func ErrValidation(err error, errs []error) render.Renderer {
	vv := make([]string, 0, len(errs))
	for _, e := range errs {
		vv = append(vv, e.Error())
	}
	return &ErrResponse{Err: err, HTTPStatusCode: 400, StatusText: "Invalid request.", ErrorText: err.Error(), ErrValidation: vv}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf(e.Translate(trans))) //nolint:govet
	}
	return errs
}
