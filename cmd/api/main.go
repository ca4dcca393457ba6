package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenticdoctor/backend/internal/config"
	"github.com/agenticdoctor/backend/internal/handler"
	"github.com/agenticdoctor/backend/internal/model/roster"
	"github.com/agenticdoctor/backend/internal/service/ai"
	"github.com/agenticdoctor/backend/internal/service/research"
	"github.com/agenticdoctor/backend/internal/service/session"
	"github.com/agenticdoctor/backend/internal/service/transcript"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Agent roster and durable transcript log
	rosterStore := roster.NewMemoryStore(roster.Seed())
	transcriptLog := transcript.NewLog(cfg.Transcript.LogPath, cfg.Transcript.ReportsDir)
	diagnosticLog := transcript.NewDiagnosticLog(cfg.Transcript.DiagnosticLogPath)
	sessions := session.NewStore(transcriptLog)

	researchClient := research.NewClient(cfg.Research)

	// Initialize AI service
	var aiService *ai.Service
	if cfg.AI.Enabled() {
		aiService, err = ai.NewService(ctx, rosterStore, cfg.AI, researchClient, diagnosticLog)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check model provider environment variables")
		} else {
			log.Printf("AI service initialized successfully (provider=%s)", cfg.AI.Provider)
		}
	} else {
		log.Println("model credentials not configured, skipping AI initialization")
	}

	router := handler.NewRouter(rosterStore, sessions, transcriptLog, aiService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Agentic Doctor backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
