package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/darkhorsekelly/mesh/internal/audit"
	"github.com/darkhorsekelly/mesh/internal/config"
	"github.com/darkhorsekelly/mesh/internal/game"
	"github.com/darkhorsekelly/mesh/internal/transport"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MESH tick resolver server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

// runServe wires a Repository, the tunables Store, a game.Session, and
// the transport layer together, then blocks serving HTTP until an
// interrupt asks it to wind down.
func runServe() error {
	port := getEnvOrDefault("PORT", "8080")
	configPath := getEnvOrDefault("CONFIG_PATH", "")

	repo, err := openRepository()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	store, err := config.NewStore(configPath)
	if err != nil {
		return fmt.Errorf("failed to load tunables from %s: %w", configPath, err)
	}

	stopWatch := make(chan struct{})
	go store.Watch(stopWatch)

	ctx := context.Background()
	initial, err := loadOrGenesis(ctx, repo)
	if err != nil {
		return fmt.Errorf("failed to load initial world state: %w", err)
	}

	session := game.NewSession(repo, store, *initial)
	handler := transport.NewAPIHandler(session, store)

	engine := gin.Default()
	handler.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: engine,
	}

	go func() {
		log.Printf("[mesh] listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[mesh] server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("[mesh] shutting down")
	close(stopWatch)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[mesh] graceful shutdown failed: %v", err)
	}

	if err := repo.Close(); err != nil {
		log.Printf("[mesh] error closing repository: %v", err)
	}

	return nil
}

// openRepository selects a Repository implementation from DB_DRIVER
// ("postgres" or "sqlite", default "sqlite") and connects it using
// DB_DSN / DB_PATH.
func openRepository() (audit.Repository, error) {
	driver := getEnvOrDefault("DB_DRIVER", "sqlite")

	switch driver {
	case "postgres":
		dsn := requireEnv("DB_DSN")
		repo, err := audit.ConnectPostgres(dsn)
		if err != nil {
			return nil, err
		}
		if err := repo.InitSchema(context.Background()); err != nil {
			return nil, err
		}
		return repo, nil

	case "sqlite":
		path := getEnvOrDefault("DB_PATH", "mesh.db")
		return audit.OpenSQLite(path)

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (expected postgres or sqlite)", driver)
	}
}

// loadOrGenesis returns the most recently persisted world, or a bare
// genesis world (tick 0, no entities) if the repository is empty.
func loadOrGenesis(ctx context.Context, repo audit.Repository) (*models.World, error) {
	latest, err := repo.GetLatestTick(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest tick: %w", err)
	}
	if latest == 0 {
		state, err := repo.LoadState(ctx, 0)
		if err != nil {
			return nil, err
		}
		if state != nil {
			return state, nil
		}
		return &models.World{Tick: 0}, nil
	}

	state, err := repo.LoadState(ctx, latest)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for tick %d: %w", latest, err)
	}
	if state == nil {
		return nil, fmt.Errorf("no state snapshot recorded for latest tick %d", latest)
	}
	return state, nil
}
