package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/showcase/internal/cache"
	"github.com/Zachkp/showcase/internal/portfolio"
	"github.com/Zachkp/showcase/internal/presence"
	"github.com/Zachkp/showcase/internal/supabase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := loadConfig()

	root := &cobra.Command{
		Use:          "showcase",
		Short:        "Portfolio site with a live presence widget",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfg.PresenceURL, "presence-url", cfg.PresenceURL, "presence service endpoint")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serve.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	serve.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for cache and visitor data")
	serve.Flags().DurationVar(&cfg.PresenceInterval, "presence-interval", cfg.PresenceInterval, "delay between presence polls")

	presenceCmd := &cobra.Command{
		Use:   "presence",
		Short: "Fetch presence once and print the normalized activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresence(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	root.AddCommand(serve, presenceCmd)
	return root
}

func runPresence(ctx context.Context, cfg Config, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	raws, err := presence.NewClient(cfg.PresenceURL).Fetch(ctx)
	if err != nil {
		return err
	}

	type line struct {
		presence.Activity
		Label string `json:"label"`
	}
	out := []line{}
	for _, act := range presence.NormalizeAll(raws) {
		out = append(out, line{Activity: act, Label: act.Label()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runServe(ctx context.Context, cfg Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := cache.NewSQLite(db)
	if err != nil {
		return err
	}
	visitors, err := newVisitorLog(db)
	if err != nil {
		return err
	}
	go visitors.cleanup()

	if cfg.SupabaseURL == "" {
		log.Println("WARNING: SUPABASE_URL not set, serving cached portfolio data only")
	}
	client := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)
	client.Timeout = cfg.FetchTimeout

	loader := portfolio.NewLoader(portfolio.SupabaseSource{Client: client}, store)
	loader.Start(ctx)
	defer loader.Close()

	poller := presence.NewPoller(presence.NewClient(cfg.PresenceURL), cfg.PresenceInterval)
	poller.Start(ctx)
	defer poller.Stop()

	a := &app{cfg: cfg, loader: loader, poller: poller, store: store, visitors: visitors}
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Showcase listening on http://localhost:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), gin.Logger(), gin.Recovery())
	if a.visitors != nil {
		r.Use(a.visitors.Middleware())
	}
	r.SetHTMLTemplate(loadTemplates())
	a.setupRoutes(r)
	return r
}
