// cmd/orchestrator/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"outreach-engine/internal/campaign"
	"outreach-engine/internal/common/auth"
	commonaws "outreach-engine/internal/common/aws"
	"outreach-engine/internal/common/config"
	"outreach-engine/internal/common/database"
	"outreach-engine/internal/common/logger"
	"outreach-engine/internal/common/observability"
	"outreach-engine/internal/genai"
	"outreach-engine/internal/store"
	"outreach-engine/internal/transport"
)

// trackingPixel is a 1x1 transparent GIF served to the open-tracking
// endpoint. Loading it marks the referenced send record as opened.
var trackingPixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting campaign orchestrator...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Transport ---
	var mailer transport.Transport
	switch cfg.Transport.Provider {
	case "ses":
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Transport.SES.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		mailer = transport.NewSESTransport(sesClient, cfg.Transport.SES.Sender, log)
	default:
		mailer = transport.NewGmailTransport(
			cfg.Transport.Gmail.BaseURL,
			time.Duration(cfg.Transport.Gmail.TimeoutMS)*time.Millisecond,
			log,
		)
	}
	zapLog.Info("transport initialized", zap.String("provider", mailer.Provider()))

	// --- Init GenAI collaborators ---
	aiClient := genai.NewClient(genai.Config{
		APIKey:      cfg.GenAI.APIKey,
		BaseURL:     cfg.GenAI.BaseURL,
		Model:       cfg.GenAI.Model,
		Temperature: cfg.GenAI.Temperature,
		MaxTokens:   cfg.GenAI.MaxTokens,
		Timeout:     time.Duration(cfg.GenAI.TimeoutMS) * time.Millisecond,
	}, log)

	// --- Init Identity Verification ---
	verifier := auth.NewGoogleVerifier(
		cfg.Auth.Google.TokenInfoURL,
		cfg.Auth.Google.RequiredScope,
		time.Duration(cfg.Auth.Google.TimeoutMS)*time.Millisecond,
	)

	orch := campaign.NewOrchestrator(campaign.Dependencies{
		Validator: genai.NewValidator(aiClient),
		Generator: genai.NewGenerator(aiClient, log),
		Transport: mailer,
		Campaigns: store.NewPostgresStore(pg.DB),
		Activity:  store.NewRedisActivityStore(redis.Client),
		Verifier: campaign.VerifierFunc(func(ctx context.Context, credential string) (string, error) {
			identity, err := verifier.Verify(ctx, credential)
			if err != nil {
				return "", err
			}
			return identity.Email, nil
		}),
		Logger: log,
		Timeouts: campaign.Timeouts{
			Validator: time.Duration(cfg.Engine.ValidatorTimeoutMS) * time.Millisecond,
			Generator: time.Duration(cfg.Engine.GeneratorTimeoutMS) * time.Millisecond,
			Dispatch:  time.Duration(cfg.Engine.DispatchTimeoutMS) * time.Millisecond,
		},
	})

	zapLog.Info("orchestrator ready")

	// --- Health, Metrics & Tracking Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		// Recipient mail clients load this pixel; the first load flips the
		// record to opened, repeats are no-ops. The pixel is always served,
		// an unknown record id must not surface to the recipient.
		http.HandleFunc("/t/open", func(w http.ResponseWriter, r *http.Request) {
			recordID := r.URL.Query().Get("r")
			if recordID != "" {
				if _, err := orch.MarkOpened(r.Context(), recordID, time.Now().UTC()); err != nil {
					log.Debug("open tracking miss", map[string]interface{}{
						"recordId": recordID,
						"error":    err.Error(),
					})
				}
			}
			w.Header().Set("Content-Type", "image/gif")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusOK)
			w.Write(trackingPixel)
		})
		http.Handle("/metrics", promhttp.Handler())

		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping orchestrator...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	zapLog.Info("Campaign orchestrator stopped gracefully")
}
