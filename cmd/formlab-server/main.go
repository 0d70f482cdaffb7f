package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	server "github.com/formlab/formlab/internal"
	"github.com/formlab/formlab/internal/config"
	"github.com/formlab/formlab/internal/event"
	"github.com/formlab/formlab/internal/eventbus"
	"github.com/formlab/formlab/internal/export"
	"github.com/formlab/formlab/internal/project"
	projectrepo "github.com/formlab/formlab/internal/project/repositoryimpl"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/internal/session"
	"github.com/formlab/formlab/internal/status"
	"github.com/formlab/formlab/pkg/clog"
	"github.com/formlab/formlab/pkg/storage"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewHTTPTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	// Setup storage
	var store storage.Storage
	var localStore *storage.Local
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	case "memory":
		store = storage.NewMemory()
	default:
		localStore, err = storage.NewLocal(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
		store = localStore
	}

	// Field type catalog
	catalog := schema.DefaultCatalog()
	if env.EditorEnv.CatalogPath != "" {
		catalog, err = schema.LoadCatalog(env.EditorEnv.CatalogPath)
		if err != nil {
			slog.Error("failed to load field type catalog", "path", env.EditorEnv.CatalogPath, "error", err)
			os.Exit(1)
		}
	}

	// Setup event bus and status tracker
	bus := eventbus.New()
	tracker := status.NewTracker(time.Duration(env.EditorEnv.StatusTTLSeconds) * time.Second)

	// Setup repository and session registry
	projectRepo := projectrepo.NewJSONRepository(store)
	sessionManager := session.NewManager()

	// Setup servers
	projectServer := project.NewServer(projectRepo, sessionManager, bus, tracker)
	sessionServer := session.NewServer(sessionManager, projectRepo)
	exportServer := export.NewServer(sessionManager, projectRepo)
	statusServer := status.NewServer(tracker)
	eventServer := event.NewServer(bus)

	srv := server.NewServer(env, catalog, projectServer, sessionServer, exportServer, statusServer, eventServer)

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Watch the local project dir so out-of-band edits show up as events.
	if localStore != nil {
		watcher := project.NewWatcher(filepath.Join(localStore.BaseDir(), projectrepo.ProjectsPrefix), bus)
		go func() {
			if err := watcher.Start(ctx); err != nil {
				slog.Warn("project watcher stopped", "error", err)
			}
		}()
	}

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	// Give active connections time to finish after stream contexts are cancelled.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
