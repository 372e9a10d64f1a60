package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/steve-z-seattle/vibe-coding-for-chess/engine"
	"github.com/steve-z-seattle/vibe-coding-for-chess/httpapi"
)

const (
	exitOK = iota
	exitErr
)

var (
	addr      = flag.String("addr", ":8000", "listen address")
	tableSize = flag.Uint("tablesize", uint(engine.DefaultTableSize), "transposition table entries per game")
	debug     = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	if err := realMain(log); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain(log zerolog.Logger) error {
	store := httpapi.NewStore(uint32(*tableSize))
	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(log, store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", *addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
