package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/fundhive/internal/auth"
	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	campaignStore "github.com/MrJamesThe3rd/fundhive/internal/campaign/store"
	"github.com/MrJamesThe3rd/fundhive/internal/config"
	"github.com/MrJamesThe3rd/fundhive/internal/database"
	"github.com/MrJamesThe3rd/fundhive/internal/donation"
	donationStore "github.com/MrJamesThe3rd/fundhive/internal/donation/store"
	fundhiveHttp "github.com/MrJamesThe3rd/fundhive/internal/http"
	campaignHandler "github.com/MrJamesThe3rd/fundhive/internal/http/campaign"
	donationHandler "github.com/MrJamesThe3rd/fundhive/internal/http/donation"
	"github.com/MrJamesThe3rd/fundhive/internal/http/respond"
	"github.com/MrJamesThe3rd/fundhive/internal/payment/paystack"
	"github.com/MrJamesThe3rd/fundhive/internal/payment/stripe"
	"github.com/MrJamesThe3rd/fundhive/internal/sweeper"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to read .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler).With("app", cfg.App.Name))
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	var (
		stripeGateway = stripe.New(stripe.Config{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			APIURL:        cfg.Stripe.APIURL,
			Currency:      cfg.Payment.Currency,
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
			Timeout:       cfg.Payment.Timeout,
		})
		paystackGateway = paystack.New(paystack.Config{
			SecretKey:   cfg.Paystack.SecretKey,
			BaseURL:     cfg.Paystack.BaseURL,
			CallbackURL: cfg.Paystack.CallbackURL,
			CancelURL:   cfg.Paystack.CancelURL,
			Timeout:     cfg.Payment.Timeout,
		})
	)

	var (
		campaignService = campaign.NewService(campaignStore.New(db))
		donationService = donation.NewService(donationStore.New(db), campaignService, stripeGateway, paystackGateway)
	)

	sweep, err := sweeper.New(campaignService, cfg.Sweeper.Schedule)
	if err != nil {
		return err
	}

	rs := respond.New(cfg.IsDevelopment())

	router := fundhiveHttp.New(
		fundhiveHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins},
		rs,
		auth.NewVerifier(cfg.Auth.JWTSecret),
		campaignHandler.NewHandler(campaignService, rs),
		donationHandler.NewHandler(donationService, rs),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.App.Env)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		return sweep.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
