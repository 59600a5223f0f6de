// Package rest exposes a preparation run over HTTP: a status endpoint
// reporting node and original-edge counts and strongly-connected-
// component diagnostics (it reports neither the graph's phase nor a
// shortcut count), a locate endpoint resolving a lat/lon to the
// nearest ingested node, and a Prometheus /metrics scrape target. Modeled
// on the teacher's pkg/server/mm_rest/handlers.go router/handler/
// render.Bind shape.
package rest

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrepStatus reports on an in-progress or finished contraction run.
// *contractor.Contractor satisfies this directly.
type PrepStatus interface {
	Nodes() int32
	OriginalEdges() int32
	ComponentCount() int
	LargestComponentSize() int32
}

// NodeLocator resolves a query point to the nearest ingested node.
// *geo.NodeIndex satisfies this directly.
type NodeLocator interface {
	Nearest(lat, lon float64) (nodeID int32, distKM float64, ok bool)
}

// NewRouter wires the debug REST surface around an in-progress or
// finished Contractor and the NodeIndex built from the same OSM extract.
func NewRouter(status PrepStatus, locator NodeLocator) *chi.Mux {
	h := &Handler{status: status, locator: locator}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/prep", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/locate", h.Locate)
	})

	return r
}
