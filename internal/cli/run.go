package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smsgrab/smsgrab/internal/cli/ui"
	"github.com/smsgrab/smsgrab/internal/config"
	"github.com/smsgrab/smsgrab/internal/display"
	"github.com/smsgrab/smsgrab/internal/session"
	"github.com/smsgrab/smsgrab/internal/smshub"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a rental session",
	Long: `Start an interactive rental session: buy an initial batch of numbers,
poll them for OTPs, and read commands from stdin.

Commands during a session:
  1     cancel all numbers and buy new ones
  2     cancel all numbers and exit
  c<N>  cancel number N (1-based)`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().String("config", "", "Path to smsgrab.toml config file")
	runCmd.Flags().String("service", "", "Service code to receive SMS for")
	runCmd.Flags().String("country", "", "Vendor country code")
	runCmd.Flags().String("operator", "", "Vendor operator code")
	runCmd.Flags().String("currency", "", "ISO 4217 numeric currency code")
	runCmd.Flags().String("max-price", "", "Per-number price ceiling")
	runCmd.Flags().String("batch-cap", "", "Most numbers bought per purchase cycle")
	runCmd.Flags().String("refresh-interval", "", "OTP polling cadence in milliseconds")
}

func runSession(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	flags := map[string]string{}
	for _, name := range []string{"service", "country", "operator", "currency", "max-price", "batch-cap", "refresh-interval"} {
		v, _ := cmd.Flags().GetString(name)
		flags[name] = v
	}

	interactive := ui.ColorEnabled()
	spin := ui.NewStepSpinner(os.Stdout, !interactive)

	spin.Start("Loading configuration")
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		spin.Fail()
		return err
	}
	spin.Done()

	logger := newLogger(cfg.Logging)
	sessionID := uuid.NewString()
	logger.Info("session starting",
		"session_id", sessionID,
		"service", cfg.Vendor.Service,
		"country", cfg.Vendor.CountryCode,
		"batch_cap", cfg.Purchase.BatchCap,
		"refresh_interval", cfg.RefreshInterval(),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console := display.NewConsole(os.Stdout, interactive)
	console.ShowTitle(buildVersion)

	maxPrice := decimal.NewFromFloat(cfg.Vendor.MaxPrice)
	client := smshub.NewClient(smshub.Config{
		APIURL:   cfg.Vendor.APIURL,
		APIKey:   cfg.Vendor.APIKey,
		Service:  cfg.Vendor.Service,
		Country:  cfg.Vendor.CountryCode,
		Operator: cfg.Vendor.Operator,
		Currency: cfg.Vendor.Currency,
		MaxPrice: maxPrice,
		Timeout:  cfg.RequestTimeout(),
	}, logger)

	sess := session.New(session.Config{
		BatchCap:        cfg.Purchase.BatchCap,
		MaxPrice:        maxPrice,
		RefreshInterval: cfg.RefreshInterval(),
	}, client, console, logger)

	if err := sess.Run(ctx, os.Stdin); err != nil {
		logger.Error("session ended", "session_id", sessionID, "error", err)
		return err
	}

	logger.Info("session ended", "session_id", sessionID)
	console.Goodbye()
	return nil
}

// newLogger builds the session logger from the logging config.
// Logs go to stderr so they never tear the stdout order listing.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
