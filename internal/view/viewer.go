// Package view serves the latest rendered dashboard over a local HTTP
// endpoint so charts can be inspected in a browser.
package view

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/and161185/hr-console/internal/chart"
)

// Viewer exposes the chart engine's slot snapshots on a local address.
type Viewer struct {
	engine *chart.Engine
	addr   string
	logger *zap.SugaredLogger
}

// NewViewer creates a viewer over the given engine.
func NewViewer(engine *chart.Engine, addr string, logger *zap.SugaredLogger) *Viewer {
	return &Viewer{engine: engine, addr: addr, logger: logger}
}

func (v *Viewer) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(logMiddleware(v.logger))
	router.Get("/", v.indexHandler)
	router.Get("/charts/{slot}.png", v.chartHandler)
	return router
}

// Run serves until ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	srv := &http.Server{Addr: v.addr, Handler: v.routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	v.logger.Infof("dashboard viewer listening on http://%s", v.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (v *Viewer) indexHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	slots := v.engine.Slots()
	fmt.Fprint(w, `<!doctype html><html><head><title>HR Console Dashboard</title>`)
	fmt.Fprint(w, `<style>body{font-family:sans-serif;margin:24px}img{display:block;margin:8px 0;border:1px solid #e5e7eb;border-radius:6px}</style>`)
	fmt.Fprint(w, `</head><body><h1>HR Console Dashboard</h1>`)
	if len(slots) == 0 {
		fmt.Fprint(w, `<p>No charts rendered yet. Run a metrics query first.</p>`)
	}
	for _, slot := range slots {
		inst, ok := v.engine.Snapshot(slot)
		if !ok || len(inst.PNG) == 0 {
			continue
		}
		fmt.Fprintf(w, `<h2>%s</h2><img src="/charts/%s.png" alt="%s">`,
			html.EscapeString(inst.Spec.Title), html.EscapeString(slot), html.EscapeString(slot))
	}
	fmt.Fprint(w, `</body></html>`)
}

func (v *Viewer) chartHandler(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	inst, ok := v.engine.Snapshot(slot)
	if !ok || len(inst.PNG) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(inst.PNG)
}
