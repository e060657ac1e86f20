// Package main запускает заглушку удалённого API витрины для локальной разработки.
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
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/mockapi"
)

var (
	addr   string
	secret string
	ttl    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "In-memory stand-in for the storefront REST API",
	Long: `mockapi serves the storefront REST API from memory so the console
can be run locally.

Seeded accounts:
  admin@aircon.test / admin123 (ADMIN)
  user@aircon.test  / user123  (USER)

Point the console at it with BACKEND_URL=http://localhost:9090 and use the
same --secret as the console's JWT_SECRET to enable signature checks.`,
	RunE: runServe,
}

var tokenCmd = &cobra.Command{
	Use:   "token <id> <email> <role>",
	Short: "Print a signed token for manual requests",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := jwt.NewJWTMaker(secret, ttl).GenerateToken(args[0], args[1], args[1], args[2])
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&secret, "secret", "dev-secret", "HS256 secret for issued tokens")
	rootCmd.PersistentFlags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           mockapi.New(mockapi.NewStore(), jwt.NewJWTMaker(secret, ttl), logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("mockapi listening", slog.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mockapi: %w", err)
	}
	return nil
}
