// Package debug exposes a read-mostly HTTP view of a container.Forest:
// scope snapshots, spew dumps, release/close actions and the metrics
// registry the scopes report to.
package debug

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

const helpText = "Common paths: '/health', '/debug/scopes', '/debug/scopes/{name}', " +
	"'/debug/scopes/{name}/dump', '/debug/metrics'"

// Handler serves the inspection endpoints for one forest.
type Handler struct {
	forest *container.Forest
	log    logrus.FieldLogger
	dumper *spew.ConfigState
}

// NewHandler creates a Handler. A nil logger falls back to the logrus
// standard logger.
func NewHandler(forest *container.Forest, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		forest: forest,
		log:    logger.WithField("component", "debug"),
		dumper: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

// Routes mounts the endpoints on r.
//
//	GET    /health
//	GET    /debug/scopes
//	GET    /debug/scopes/{name}
//	GET    /debug/scopes/{name}/dump
//	POST   /debug/scopes/{name}/release
//	DELETE /debug/scopes/{name}
//	GET    /debug/metrics
func (h *Handler) Routes(r *routing.Router) {
	r.Get("/", h.help)
	r.Get("/health", h.health)
	r.Prefix("/debug", func(d *routing.Router) {
		d.Get("/scopes", h.listScopes)
		d.Get("/scopes/{name}", h.showScope)
		d.Get("/scopes/{name}/dump", h.dumpScope)
		d.Post("/scopes/{name}/release", h.releaseScope)
		d.Delete("/scopes/{name}", h.closeScope)
		d.Get("/metrics", h.serveMetrics)
	})
}

func (h *Handler) help(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Text(http.StatusNotImplemented, helpText)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Text(http.StatusOK, "ok")
}

func (h *Handler) listScopes(w http.ResponseWriter, r *http.Request) {
	scopes := h.forest.Scopes()
	infos := make([]container.ScopeInfo, 0, len(scopes))
	for _, s := range scopes {
		infos = append(infos, s.Snapshot())
	}
	gohttp.NewResponse(w).Success(infos)
}

func (h *Handler) showScope(w http.ResponseWriter, r *http.Request) {
	s, ok := h.scope(w, r)
	if !ok {
		return
	}
	gohttp.NewResponse(w).Success(s.Snapshot())
}

func (h *Handler) dumpScope(w http.ResponseWriter, r *http.Request) {
	s, ok := h.scope(w, r)
	if !ok {
		return
	}
	gohttp.NewResponse(w).Text(http.StatusOK, h.dumper.Sdump(s.Snapshot()))
}

func (h *Handler) releaseScope(w http.ResponseWriter, r *http.Request) {
	s, ok := h.scope(w, r)
	if !ok {
		return
	}
	s.Release()
	h.log.WithField("scope", s.Name()).Info("releasable singletons released")
	gohttp.NewResponse(w).NoContent()
}

func (h *Handler) closeScope(w http.ResponseWriter, r *http.Request) {
	s, ok := h.scope(w, r)
	if !ok {
		return
	}
	h.forest.CloseScope(s.Name())
	h.log.WithField("scope", s.Name()).Info("scope closed")
	gohttp.NewResponse(w).NoContent()
}

func (h *Handler) serveMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	metrics.WriteJSONOnce(h.forest.Metrics(), w)
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (*container.Scope, bool) {
	name := routing.Param(r, "name")
	s, ok := h.forest.Lookup(name)
	if !ok {
		gohttp.NewResponse(w).NotFound("unknown scope " + name)
		return nil, false
	}
	return s, true
}
