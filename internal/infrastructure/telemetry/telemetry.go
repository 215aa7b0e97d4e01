// Package telemetry exposes Prometheus counters for provider activity.
package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tesso57/headlines/internal/application/usecase"
)

// Metrics implements usecase.FetchObserver and usecase.ImageObserver.
type Metrics struct {
	registry      *prometheus.Registry
	fetches       *prometheus.CounterVec
	itemsAppended prometheus.Counter
	images        *prometheus.CounterVec
}

// New registers the counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "headlines",
			Name:      "fetch_total",
			Help:      "News fetches by mode and outcome.",
		}, []string{"mode", "outcome"}),
		itemsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "headlines",
			Name:      "items_appended_total",
			Help:      "Items added to the displayed collection by load-more fetches.",
		}),
		images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "headlines",
			Name:      "images_total",
			Help:      "Article illustrations by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.fetches, m.itemsAppended, m.images)
	return m
}

// ObserveFetch records one fetch.
func (m *Metrics) ObserveFetch(mode usecase.FetchMode, outcome usecase.FetchOutcome, added int) {
	m.fetches.WithLabelValues(string(mode), string(outcome)).Inc()
	if mode == usecase.ModeAppend && added > 0 {
		m.itemsAppended.Add(float64(added))
	}
}

// ObserveImage records one illustration attempt.
func (m *Metrics) ObserveImage(generated bool) {
	m.images.WithLabelValues(strconv.FormatBool(generated)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("metrics listener started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
