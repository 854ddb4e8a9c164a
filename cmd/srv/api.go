package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftgroup/backend/internal/middleware"
	"github.com/giftgroup/backend/pkg/prometheus"
	"github.com/giftgroup/backend/pkg/router"
	"github.com/giftgroup/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

type healthRequest struct{}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *srv) startApi(c *cli.Context) error {
	if err := s.loadConfig(c); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	if err := s.loadRedis(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}
	defer s.close()

	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", httpSrv.Addr)
	var err error
	if cfg.ApiServer.Cert != "" && cfg.ApiServer.Key != "" {
		err = httpSrv.ListenAndServeTLS(cfg.ApiServer.Cert, cfg.ApiServer.Key)
	} else {
		err = httpSrv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler())
	router.GET(s.router, "/health", func(context.Context, *healthRequest) (*healthResponse, error) {
		return &healthResponse{Status: "ok"}, nil
	})

	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// Draw API
		router.POST(authRouter, "/performDraw", s.drawDomain.PerformDraw)
		router.POST(authRouter, "/endDraw", s.drawDomain.EndDraw)
		router.GET(authRouter, "/getMyAssignment", s.drawDomain.GetMyAssignment)
		router.GET(authRouter, "/getMyAssignments", s.drawDomain.GetMyAssignments)
		router.GET(authRouter, "/getDrawStatus", s.drawDomain.GetDrawStatus)
		router.POST(authRouter, "/revealAssignment", s.drawDomain.RevealAssignment)

		// Exclusion API
		router.POST(authRouter, "/addExclusion", s.exclusionDomain.AddExclusion)
		router.POST(authRouter, "/removeExclusion", s.exclusionDomain.RemoveExclusion)
		router.GET(authRouter, "/getExclusions", s.exclusionDomain.GetExclusions)
	}
}
