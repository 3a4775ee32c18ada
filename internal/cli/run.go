package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charliek/logview/internal/api"
	"github.com/charliek/logview/internal/config"
	"github.com/charliek/logview/internal/constants"
	"github.com/charliek/logview/internal/domain"
	"github.com/charliek/logview/internal/listener"
	"github.com/charliek/logview/internal/store"
	"github.com/charliek/logview/internal/tui"
)

// runViewer starts the ingestion pipeline and either the TUI or the
// headless stdout printer, shutting everything down cleanly on exit.
func runViewer(cfg *config.Config) error {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	source, err := listener.NewUDPSource(cfg.Listen.Host, cfg.Listen.Port)
	if err != nil {
		return err
	}
	defer source.Close()

	st := store.New()
	fv := store.NewFilterView(st)
	defer fv.Close()

	lst := listener.New(source, st, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- lst.Run(ctx)
	}()

	var apiServer *api.Server
	if cfg.API.Enabled {
		apiServer = api.NewServer(
			api.ServerConfig{Host: cfg.API.Host, Port: cfg.API.Port},
			api.NewHandlers(st, lst),
		)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error("api server stopped", "error", err)
			}
		}()
		logger.Debug("api server listening", "addr", apiServer.Addr())
	}

	logger.Debug("listening for datagrams", "addr", source.LocalAddr())

	var runErr error
	if headless {
		runErr = runHeadless(ctx, st)
	} else {
		runErr = tui.Run(st, fv, lst)
	}

	cancel()
	if apiServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer shutdownCancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("api shutdown", "error", err)
		}
	}
	source.Close()
	<-listenErr

	return runErr
}

// runHeadless prints each appended record to stdout until interrupted
func runHeadless(ctx context.Context, st *store.Store) error {
	printed := st.RowCount()
	for i := 0; i < printed; i++ {
		if rec, err := st.Record(i); err == nil {
			printRecord(rec)
		}
	}

	// Coalescing wakeup: the callback must not block the ingestion path
	notify := make(chan struct{}, 1)
	subID := st.Subscribe(func(int) {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer st.Unsubscribe(subID)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			return nil
		case <-notify:
			total := st.RowCount()
			for ; printed < total; printed++ {
				rec, err := st.Record(printed)
				if err != nil {
					return err
				}
				printRecord(rec)
			}
		}
	}
}

func printRecord(rec domain.Record) {
	fmt.Printf("%s %-8s %s %s\n", rec.FormatCreated(), rec.LevelName, rec.Name, rec.Msg)
}
