package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/givehub/server/internal/auth/http"
	authservice "github.com/givehub/server/internal/auth/service"
	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/config"
	"github.com/givehub/server/internal/common/constants"
	commoncrypto "github.com/givehub/server/internal/common/crypto"
	"github.com/givehub/server/internal/common/db"
	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
	srv "github.com/givehub/server/internal/common/server"
	"github.com/givehub/server/internal/common/session"
	donationhttp "github.com/givehub/server/internal/donation/http"
	donationrepo "github.com/givehub/server/internal/donation/repository"
	donationservice "github.com/givehub/server/internal/donation/service"
	feedws "github.com/givehub/server/internal/feed/websocket"
	needhttp "github.com/givehub/server/internal/need/http"
	needrepo "github.com/givehub/server/internal/need/repository"
	needservice "github.com/givehub/server/internal/need/service"
	userrepo "github.com/givehub/server/internal/user/repository"
	"github.com/givehub/server/internal/web"
)

func main() {
	initDB := flag.Bool("init-db", false, "create database tables and exit")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_DIR"), "give-hub", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	if *initDB {
		if err := db.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalf("failed to initialize schema: %v", err)
		}
		log.Infof("database schema initialized")
		return
	}

	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	realClock := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := &commoncrypto.UUIDGenerator{}

	hub := feedws.NewHub(realClock, log)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	userRepo := userrepo.NewPgRepository(pool)
	needRepo := needrepo.NewPgRepository(pool)
	donationRepo := donationrepo.NewPgRepository(pool)

	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        userRepo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Clock:       realClock,
		Log:         log,
	})
	needService := needservice.NewNeedService(needservice.NeedServiceDeps{
		Repo:        needRepo,
		IDGenerator: idGenerator,
		Clock:       realClock,
		Publisher:   hub,
		Log:         log,
	})
	donationService := donationservice.NewDonationService(donationservice.DonationServiceDeps{
		Repo:        donationRepo,
		IDGenerator: idGenerator,
		Clock:       realClock,
		Publisher:   hub,
		Log:         log,
	})

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, realClock)
	errorHandler := commonhttp.NewErrorHandler(log)

	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authhttp.NewHandler(authService, sessions, errorHandler, log))
	mux.Handle("/api/needs", needhttp.NewHandler(needService, errorHandler, log))
	mux.Handle("/api/donations", donationhttp.NewHandler(donationService, errorHandler, log))
	mux.Handle("/ws/feed", feedws.NewHandler(hub, log))
	mux.Handle("/health", commonhttp.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", web.NewHandler(authService, needService, donationService, sessions, log))

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, cfg.ContentSecurityPolicy, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.Middleware(next).ServeHTTP(w, r)
		})
	}

	finalHandler := sessions.Middleware(rateLimitMiddleware(baseHandler))

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("stopping live feed hub")
			hubCancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "give-hub", shutdownHooks)
}
