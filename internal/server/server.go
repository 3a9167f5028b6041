// Package server boots the storefront: config, logging, storage, Mongo,
// Redis, background workers, and the HTTP plus gRPC listeners.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/siddharthaBojanki/greenCart/app/jobs"
	"github.com/siddharthaBojanki/greenCart/app/routes"
	"github.com/siddharthaBojanki/greenCart/app/services"
	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/pkg/cache"
	"github.com/siddharthaBojanki/greenCart/pkg/database"
	"github.com/siddharthaBojanki/greenCart/pkg/event"
	"github.com/siddharthaBojanki/greenCart/pkg/grpcops"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/metrics"
	"github.com/siddharthaBojanki/greenCart/pkg/middleware"
	"github.com/siddharthaBojanki/greenCart/pkg/queue"
	"github.com/siddharthaBojanki/greenCart/pkg/reqid"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
	"github.com/siddharthaBojanki/greenCart/pkg/router"
	"github.com/siddharthaBojanki/greenCart/pkg/schedule"
	"github.com/siddharthaBojanki/greenCart/pkg/storage"
	"github.com/siddharthaBojanki/greenCart/pkg/ws"
)

// Start boots every subsystem and serves until SIGINT/SIGTERM. A store
// connection failure is fatal; a Redis failure degrades to uncached
// operation.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The store is the source of truth; refusing to start without it beats
	// silently serving errors.
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err := database.Connect(connectCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("server: store connection failed: %w", err)
	}
	defer database.Disconnect(context.Background())

	// Fan application logs out to Mongo as well, once the store is up.
	mongoLogs := logger.NewMongoHandler(database.Collection("logs"))
	defer mongoLogs.Close()
	logger.UseHandler(logger.NewMultiHandler(logger.L.Handler(), mongoLogs))

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, catalogue cache disabled", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	storage.Connect()

	jobs.RegisterAll()
	queue.SetFailedSink(queue.NewMongoFailedSink(database.Collection("failed_jobs")))
	queue.StartWorkers(ctx, 2)

	catalogue := services.NewCatalogueService()
	schedule.Every(5).Minutes().Name("catalogue.warm").WithoutOverlapping().Run(func() {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		catalogue.WarmCache(warmCtx)
	})
	schedule.Start(ctx)

	go ws.CatalogueHub.Run()
	// Catalogue changes reach storefronts through the event dispatcher so
	// services never touch the hub directly.
	for _, name := range []string{"product.added", "product.updated"} {
		name := name
		event.Listen(name, func(payload interface{}) {
			ws.CatalogueHub.BroadcastJSON(name, payload)
		})
	}

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.StorefrontCORSOptions()),
	)
	if err := routes.RegisterAPI(r); err != nil {
		return err
	}

	r.Get("/healthz", "healthz", healthz)
	r.Get("/metrics", "metrics", metrics.Handler())
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, ws.CatalogueHub)
	})
	r.HandleFunc("/storage/*", http.StripPrefix("/storage/",
		http.FileServer(http.Dir(config.StorageLocalRoot()))).ServeHTTP)

	grpcSrv, err := grpcops.Start(config.GRPCPort(), map[string]grpcops.HealthCheck{
		"mongo": func(c context.Context) error {
			if !database.Healthy(c) {
				return fmt.Errorf("mongo ping failed")
			}
			return nil
		},
		"redis": func(c context.Context) error {
			if cache.RDB == nil {
				return fmt.Errorf("redis not connected")
			}
			return cache.RDB.Ping(c).Err()
		},
	})
	if err != nil {
		return err
	}
	defer grpcops.Stop(grpcSrv)

	addr := ":" + config.AppPort()
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// healthz reports liveness plus dependency state.
func healthz(w http.ResponseWriter, r *http.Request) {
	probeCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	mongoOK := database.Healthy(probeCtx)
	redisOK := cache.RDB != nil && cache.RDB.Ping(probeCtx).Err() == nil

	if !mongoOK {
		response.Error(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	response.Success(w, response.M{
		"mongo": mongoOK,
		"redis": redisOK,
	})
}
