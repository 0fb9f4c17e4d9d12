package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/feed"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/liveview"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/photo"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		return err
	}

	clock := timezone.NewClock(timezone.Location(cfg.Timezone))
	probes := map[string]handlers.Pinger{}

	// ------------------------------
	// Change feed
	// ------------------------------
	broker := feed.NewBroker()
	var publisher feed.Publisher = broker
	if cfg.DBDriver == "postgres" {
		publisher = feed.NewPGNotifier(db, broker, zl)
		go feed.NewPGListener(cfg.DBUrl, broker, zl).Run(ctx)
	}
	collections := infraRepo.NewCollections(db, broker, publisher, clock.Location(), zl)

	// ------------------------------
	// Sessions
	// ------------------------------
	var (
		activity    session.ActivityStore = session.NewMemoryActivityStore()
		revocations identity.Revocations  = identity.NewMemoryRevocations()
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		activity = session.NewRedisActivityStore(rdb, cfg.TokenTTL)
		revocations = identity.NewRedisRevocations(rdb)
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		zl.Warn("REDIS_ADDR not set, sessions are kept in memory")
	}

	// ------------------------------
	// Identity
	// ------------------------------
	var verifier identity.TokenVerifier
	if cfg.FirebaseCredentialsFile != "" {
		fv, err := identity.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return err
		}
		verifier = fv
	}

	idp := identity.NewService(db, identity.Config{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
		ResetURL: cfg.ResetURL,
	}, revocations, verifier, identity.NewLogMailer(zl), zl)

	guard := session.NewGuard(activity, idp, cfg.SessionMaxIdle, zl)

	// ------------------------------
	// Audit and photos
	// ------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(db), zl)

	var objects photo.ObjectStore
	if cfg.PhotosEnabled() {
		objects = photo.NewS3Store(photo.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}

	// ------------------------------
	// HTTP
	// ------------------------------
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zl))

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Log:         zl,
		Clock:       clock,
		Collections: collections,
		Identity:    idp,
		Guard:       guard,
		Audit:       auditDispatcher,
		Registry:    liveview.NewRegistry(),
		Objects:     objects,
		EmailValid:  validators.NewEmailDomains(nil, 3*time.Second).Valid,
		Probes:      probes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Live streams end with the process context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		zl.Warn("audit drain", zap.Error(err))
	}
	return nil
}
