package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/config"
	"fyyur/internal/middleware"
	"fyyur/internal/store"
	"fyyur/internal/web"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	venueSvc := venues.New(dataStore, nil)
	artistSvc := artists.New(dataStore, nil)
	showSvc := shows.New(dataStore)

	srv, err := web.New(venueSvc, artistSvc, showSvc, web.Options{
		Metrics:        middleware.NewMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Genres:         dataStore,
		Location:       cfg.App.Location,
		SecureCookies:  cfg.App.SecureFlash,
	})
	if err != nil {
		return nil, err
	}
	return srv.Routes(), nil
}
