package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/dcode-github/imobiliaria/backend/cache"
	"github.com/dcode-github/imobiliaria/backend/config"
	"github.com/dcode-github/imobiliaria/backend/controllers"
	"github.com/dcode-github/imobiliaria/backend/gateway"
	"github.com/dcode-github/imobiliaria/backend/lockout"
	"github.com/dcode-github/imobiliaria/backend/notify"
	"github.com/dcode-github/imobiliaria/backend/routes"
	"github.com/dcode-github/imobiliaria/backend/snapshot"
	"github.com/dcode-github/imobiliaria/backend/storage"
	"github.com/dcode-github/imobiliaria/backend/store"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

var (
	_ store.Persister        = (*gateway.Gateway)(nil)
	_ controllers.ImageStore = (*gateway.Gateway)(nil)
	_ store.Saver            = (*snapshot.Store)(nil)
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		utils.Logger.WithError(err).Debug("No .env file loaded")
	}
}

// keyValueStore backs the session flag and the local snapshot: Redis when it
// is configured, a directory otherwise.
func keyValueStore(cfg *config.Config, redisClient *redis.Client) storage.KV {
	if redisClient != nil {
		return storage.NewRedis(redisClient, "imobiliaria:")
	}
	dir, err := storage.NewDir(cfg.SnapshotDir)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to open snapshot directory")
	}
	return dir
}

func main() {
	loadEnv()
	utils.InitLogger("imobiliaria-backend")

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	redisClient, err := config.InitRedis(cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	kv := keyValueStore(cfg, redisClient)
	flags := store.NewSessionFlag(kv)

	ctx := context.Background()
	var (
		appStore *store.Store
		images   controllers.ImageStore
		closeDB  = func() {}
	)

	// exactly one persistence strategy per process
	switch cfg.Persistence {
	case config.PersistenceRemote:
		client, err := config.ConnectDB(cfg.MongoURI)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to connect to the database")
		}
		closeDB = func() { config.CloseDBConnection(client) }

		gw, err := gateway.New(client, cfg.DBName, gateway.Options{
			Transactions:  cfg.MongoTransactions,
			ImageBucket:   cfg.ImageBucket,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to set up the gateway")
		}
		appStore = store.NewRemote(ctx, gw, flags)
		images = gw
	case config.PersistenceLocal:
		appStore = store.NewLocal(ctx, snapshot.New(kv), flags)
		if err := appStore.LoadErr(); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to load the local snapshot")
		}
	}
	utils.Logger.WithField("persistence", cfg.Persistence).Info("Application store ready")

	var catalog *cache.Catalog
	if redisClient != nil {
		catalog = cache.NewCatalog(redisClient, cfg.CacheTTL)
	}

	var notifier notify.LeadNotifier = notify.Noop{}
	if cfg.NotifyEnabled() {
		notifier = notify.NewSendGrid(cfg.SendGridAPIKey, cfg.LeadNotifyFrom, cfg.LeadNotifyTo, cfg.SendGridSandbox)
	}

	router := mux.NewRouter()
	routes.Routes(router, routes.Deps{
		Store:    appStore,
		Catalog:  catalog,
		Images:   images,
		Notifier: notifier,
		Verifier: utils.BcryptVerifier{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash},
		Issuer:   utils.NewTokenIssuer(cfg.JWTKey, cfg.TokenTTL),
		Attempts: lockout.New(kv, lockout.Options{
			MaxAttempts:  cfg.MaxLoginAttempts,
			Window:       cfg.LoginAttemptWindow,
			LockDuration: cfg.LoginLockDuration,
		}),
	})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		utils.Logger.Infof("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.WithError(err).Fatal("Error starting server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	utils.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Error("Error during server shutdown")
	}
	if err := appStore.Close(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Warn("Pending writes did not finish before shutdown")
	}
	closeDB()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	utils.Logger.Info("Server gracefully stopped")
}
