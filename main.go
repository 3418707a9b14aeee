package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/secretary/cliparse"
	"github.com/danielhkuo/secretary/dedup"
	"github.com/danielhkuo/secretary/dispatch"
	"github.com/danielhkuo/secretary/persist"
	"github.com/danielhkuo/secretary/router"
	"github.com/danielhkuo/secretary/state"
	"github.com/danielhkuo/secretary/twilio"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load persisted state
	files := persist.NewFileStore(cfg.StatePath)
	store := state.New()
	snap, found, err := files.Load()
	if err != nil {
		slog.Error("state load failed", "path", cfg.StatePath, "error", err)
		os.Exit(1)
	}
	if found {
		store.Restore(snap)
		slog.Info("State restored", "path", cfg.StatePath, "subscribers", store.SubscriberCount())
	} else {
		slog.Info("Starting with empty state", "path", cfg.StatePath)
	}

	// Optional webhook dedup
	var seen *dedup.Store
	if cfg.RedisURL != "" {
		seen, err = dedup.New(cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer seen.Close()
		slog.Info("Webhook dedup enabled")
	}

	// Outbound SMS client and command dispatcher
	sender := twilio.NewClient(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	dispatcher := dispatch.New(store, sender, cfg.Admins, cfg.AdminLabel)

	// Create router
	mux := router.NewRouter(store, dispatcher, cfg, seen, files)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "admins", len(cfg.Admins))
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Flush anything still dirty before exiting
	if wrote, err := persist.WriteIfDirty(store, files); err != nil {
		slog.Error("final state write failed", "error", err)
	} else if wrote {
		slog.Info("State saved", "path", cfg.StatePath)
	}
}
