package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/car4me/car4me/internal/config"
	"github.com/car4me/car4me/internal/database"
	"github.com/car4me/car4me/internal/janitor"
	"github.com/car4me/car4me/internal/logging"
	"github.com/car4me/car4me/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port         int
	bind         string
	allowSubnet  string
	dbDriver     string
	dbPath       string
	legacyCompat bool
	verbosity    int
	logFile      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "car4me",
		Short: "Car4Me - Car rental API server",
		Long:  `Car4Me is a REST API server for a car rental back office: clients, vehicles, reservations, maintenance, favorites and employees.`,
		RunE:  run,
	}

	// Flags; unset flags fall back to the environment (.env supported)
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	rootCmd.Flags().StringVar(&dbDriver, "db-driver", "", "Database driver: mysql or sqlite (or set DB_DRIVER env var)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().BoolVar(&legacyCompat, "legacy-compat", false, "Reproduce the original API quirks (405 catch-all, ignored vehicle filters)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write logs to this file (rotated)")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("car4me %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	// Flags override the environment
	if port != 0 {
		cfg.Port = port
	}
	if bind != "" {
		cfg.Bind = bind
	}
	if allowSubnet != "" {
		cfg.AllowSubnet = allowSubnet
	}
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if legacyCompat {
		cfg.LegacyCompat = true
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	// Validate bind address if provided
	if cfg.Bind != "" {
		if ip := net.ParseIP(cfg.Bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", cfg.Bind)
		}
	}

	// Validate and parse allow-subnet if provided
	var allowedNet *net.IPNet
	if cfg.AllowSubnet != "" {
		_, parsedNet, err := net.ParseCIDR(cfg.AllowSubnet)
		if err != nil {
			return fmt.Errorf("invalid allow-subnet CIDR: %s", cfg.AllowSubnet)
		}
		allowedNet = parsedNet
	}

	logging.Apply(verbosity, cfg.LogFile)

	// Warn if binding to all interfaces without an allow list
	if (cfg.Bind == "" || cfg.Bind == "0.0.0.0" || cfg.Bind == "::") && cfg.AllowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	log.Info().
		Str("version", version).
		Int("port", cfg.Port).
		Str("bind", cfg.Bind).
		Str("allow_subnet", cfg.AllowSubnet).
		Str("db_driver", cfg.DBDriver).
		Bool("legacy_compat", cfg.LegacyCompat).
		Msg("Starting Car4Me")

	// Initialize database
	db, err := database.New(database.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Path:     cfg.DBPath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Audit log janitor
	j := janitor.New(db, cfg.AuditRetentionDays)
	if err := j.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start audit log janitor")
	}
	defer j.Stop()

	// Web server
	server := web.NewServer(db, cfg.Port, cfg.Bind, allowedNet, cfg.LegacyCompat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server error")
		return err
	}

	log.Info().Msg("Shutdown complete")
	return nil
}
