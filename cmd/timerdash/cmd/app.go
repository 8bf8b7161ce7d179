package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"timerdash/internal/actionlog"
	"timerdash/internal/alert"
	"timerdash/internal/clock"
	"timerdash/internal/config"
	"timerdash/internal/handler"
	"timerdash/internal/history"
	"timerdash/internal/metrics"
	"timerdash/internal/router"
	"timerdash/internal/service"
)

const shutdownTimeout = 5 * time.Second

// app holds the components shared by the dashboard and the headless server.
type app struct {
	cfg     config.Config
	fs      afero.Fs
	logFile afero.File
	diag    *log.Logger
	metrics *metrics.Metrics
	manager *service.TimeManager
	bell    *alert.Bell
	server  *http.Server
}

func newApp(cfg config.Config) (*app, error) {
	fs := afero.NewOsFs()
	logFile, err := actionlog.Open(fs, cfg.LogPath)
	if err != nil {
		return nil, err
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	a := &app{
		cfg:     cfg,
		fs:      fs,
		logFile: logFile,
		diag:    actionlog.NewLogrus(logFile, level),
		metrics: metrics.New(),
	}
	a.diag.Infof("Logging system initialized at %s", cfg.LogPath)

	var alerter service.Alerter = alert.Silent{}
	if cfg.AlertEnabled {
		bell, err := alert.NewBell(cfg.AlertWorkers, os.Stdout, a.diag)
		if err != nil {
			return nil, multierror.Append(err, logFile.Close())
		}
		a.bell = bell
		alerter = bell
	}

	a.manager = service.NewTimeManager(clock.Real{}, actionlog.New(logFile, clock.Real{}), alerter, a.metrics)
	return a, nil
}

func (a *app) readLog() (string, error) {
	return history.ReadLog(a.fs, a.cfg.LogPath)
}

// startServer serves the control API in the background.
func (a *app) startServer(listen string) {
	tokens := service.NewTokenService(a.cfg.JWTSecret, a.cfg.TokenTTL, clock.Real{})
	engine := router.New(
		tokens,
		handler.NewItemHandler(a.manager),
		handler.NewHistoryHandler(a.fs, a.cfg.LogPath, a.cfg.SeparatorWidth),
		a.metrics.Registry(),
		a.diag,
		a.cfg.CORSOrigins,
	)
	a.server = &http.Server{Addr: listen, Handler: engine, ReadHeaderTimeout: 10 * time.Second}

	a.diag.Infof("control API listening on %s", listen)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.diag.Errorf("control API stopped: %v", err)
		}
	}()
}

// Close stops the server, the alert pool and the log file, reporting every
// failure.
func (a *app) Close() error {
	var result *multierror.Error
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("shutdown control API: %w", err))
		}
	}
	if a.bell != nil {
		a.bell.Close()
	}
	a.diag.Info("Shutting down")
	if err := a.logFile.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close action log: %w", err))
	}
	return result.ErrorOrNil()
}
