package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"mood-chat/auth"
	"mood-chat/contract"
	"mood-chat/infrastructure/ws"
	"mood-chat/internal"
	"mood-chat/moderation"
	"mood-chat/repositories"
	"mood-chat/runtime"
	"mood-chat/runtime/workers"
	"mood-chat/search"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle and
// centralizes error reporting, so every defer executes before the process
// exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Engine wiring
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	store := repositories.NewConversationRepository(db, log)

	var directory contract.IPeerDirectory = auth.OpenDirectory{}
	if users := config.Users(); len(users) > 0 {
		directory = auth.NewStaticDirectory(users...)
	}

	router := runtime.NewRouter(log, registry, store, directory, sup, runtime.RouterConfig{
		QueueSize:       config.QueueSize,
		DeliveryTimeout: config.DeliveryTimeout,
		RetryAttempts:   config.RetryAttempts,
		RetryBackoff:    config.RetryBackoff,
		HistoryPageSize: config.HistoryPageSize,
		MaxPayloadBytes: config.MaxPayloadBytes,
		TypingTTL:       config.TypingTTL,
		ReapInterval:    config.ReapInterval,
	})

	if config.WordlistPath != "" {
		replacement, err := config.Replacement()
		if err != nil {
			return err
		}
		words, err := moderation.LoadWordlist(config.WordlistPath)
		if err != nil {
			return fmt.Errorf("loading wordlist: %w", err)
		}
		moderator, err := moderation.NewModerator(words, replacement)
		if err != nil {
			return err
		}
		router.WithModerator(moderator)
		log.Info("Moderation enabled", "words", len(words))
	}

	if config.BlugeFilepath != "" {
		index, err := search.NewIndex(config.BlugeFilepath, log)
		if err != nil {
			return fmt.Errorf("opening search index: %w", err)
		}
		defer func() { _ = index.Close() }()
		router.WithSearcher(index)
		log.Info("Search enabled", "path", config.BlugeFilepath)
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start the engine and the ops server under supervision
	router.Start(ctx)
	sup.Add(internal.NewOpsServer(db, config.OpsPort, func() map[string]any {
		return map[string]any{"Online": len(registry.Online())}
	}))
	go sup.Run(ctx)

	// 6. Websocket server
	tokens := auth.NewTokens([]byte(config.TokenSecret), config.TokenLifetime)
	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(ctx, router, tokens, log, config.ConnectionBufferSize))

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: mux}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting websocket server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
