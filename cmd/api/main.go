package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clintbelew/Vappi-voice-bot/internal/api"
	"github.com/clintbelew/Vappi-voice-bot/internal/config"
	"github.com/clintbelew/Vappi-voice-bot/internal/services"
)

func main() {
	log.Println("Starting voice bot backend...")

	// Load configuration — missing required env vars fail here, before the
	// port is ever bound
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// TTS provider — ElevenLabs preferred, Cartesia as alternate
	var ttsSvc services.TTSService
	if cfg.ElevenLabsKey != "" {
		ttsSvc = services.NewElevenLabsService(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID)
		log.Printf("TTS provider: ElevenLabs (voice: %s)", cfg.ElevenLabsVoiceID)
	} else {
		ttsSvc = services.NewCartesiaService(cfg.CartesiaKey, cfg.CartesiaURL, cfg.CartesiaVoiceID)
		log.Printf("TTS provider: Cartesia (voice: %s)", cfg.CartesiaVoiceID)
	}

	crmSvc := services.NewHighLevelService(cfg.GHLAPIKey, cfg.GHLLocationID, cfg.GHLCalendarID)
	log.Printf("CRM provider: HighLevel (location: %s, calendar: %s)", cfg.GHLLocationID, cfg.GHLCalendarID)

	handler := api.NewHandler(ttsSvc, crmSvc, cfg.Timezone)
	router := api.NewRouter(handler, api.RouterConfig{
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("API server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
