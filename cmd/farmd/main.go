package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/farmchain-go/internal/adapters/api"
	"github.com/andrescamacho/farmchain-go/internal/adapters/httpapi"
	"github.com/andrescamacho/farmchain-go/internal/adapters/metrics"
	"github.com/andrescamacho/farmchain-go/internal/adapters/persistence"
	"github.com/andrescamacho/farmchain-go/internal/application/auth"
	"github.com/andrescamacho/farmchain-go/internal/application/logging"
	"github.com/andrescamacho/farmchain-go/internal/application/mediator"
	"github.com/andrescamacho/farmchain-go/internal/application/setup"
	"github.com/andrescamacho/farmchain-go/internal/domain/ports"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/database"
	"github.com/andrescamacho/farmchain-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	forceFlag := flag.Bool("force", false, "Kill any existing engine and start a new one")
	flag.Parse()

	fmt.Println("FarmChain Engine v0.1.0")
	fmt.Println("=======================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Server.PIDFile)
	pf := pidfile.New(cfg.Server.PIDFile)

	// Try to acquire the lock
	err := pf.Acquire()
	if err != nil {
		if *forceFlag {
			// Force mode: kill existing engine and try again
			fmt.Println("Force mode enabled - attempting to kill existing engine...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing engine: %v", killErr)
			}
			fmt.Println("Existing engine killed")

			// Try to acquire lock again
			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing engine: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing engine", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	// Initialize application
	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Setup database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 2. Initialize metrics collectors
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		engineCollector := metrics.NewEngineMetricsCollector()
		if err := engineCollector.Register(); err != nil {
			return fmt.Errorf("failed to register engine metrics: %w", err)
		}
		metrics.SetGlobalEngineCollector(engineCollector)

		chainCollector := metrics.NewChainMetricsCollector()
		if err := chainCollector.Register(); err != nil {
			return fmt.Errorf("failed to register chain metrics: %w", err)
		}
		metrics.SetGlobalChainCollector(chainCollector)

		fmt.Println("Metrics enabled, serving on /metrics")
	}

	// 3. Initialize chain gateway client
	gateway := api.NewChainGatewayClientWithConfig(
		cfg.Chain.GatewayURL,
		float64(cfg.Chain.RateLimit.Requests),
		cfg.Chain.RateLimit.Burst,
		cfg.Chain.Retry.MaxAttempts,
		cfg.Chain.Retry.BackoffBase,
		cfg.Chain.Timeout,
		nil, // nil = use RealClock in production
	)
	fmt.Printf("Chain gateway client initialized: %s\n", cfg.Chain.GatewayURL)

	// The whitelist gate only applies on mainnet; on testnet every
	// wallet may save
	var whitelist ports.Whitelist
	if cfg.Chain.Mainnet() {
		whitelist = gateway
		fmt.Println("Mainnet whitelist gate enabled")
	}

	// 4. Initialize repositories
	farmRepo := persistence.NewGormFarmRepository(db)
	eventStore := persistence.NewGormEventStore(db)

	// 5. Initialize mediator with signature verification middleware
	med := mediator.NewMediator()
	med.Use(auth.SignatureMiddleware(gateway))

	// 6. Register command and query handlers
	registry := setup.NewHandlerRegistry(farmRepo, eventStore, gateway, gateway, whitelist, nil)
	if err := registry.RegisterFarmHandlers(med); err != nil {
		return fmt.Errorf("failed to register farm handlers: %w", err)
	}
	fmt.Println("Handlers registered")

	// 7. Start HTTP server
	logger := logging.NewStdLogger(cfg.Logging.Level)
	server := httpapi.NewServer(med, logger)

	fmt.Printf("Starting HTTP server on: %s\n", cfg.Server.Listen)
	shutdownServer := server.Start(cfg.Server.Listen)
	defer shutdownServer()

	fmt.Println("\n✓ Engine is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	// Wait for shutdown signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	fmt.Println("\nEngine stopped")
	return nil
}
