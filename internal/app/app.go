package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"hr-interviews-go/internal/broker"
	"hr-interviews-go/internal/config"
	"hr-interviews-go/internal/db"
	employeedomain "hr-interviews-go/internal/domain/employee"
	"hr-interviews-go/internal/domain/events"
	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/internal/repository/inmemory"
	employeerepo "hr-interviews-go/internal/repository/postgres/employee"
	interviewrepo "hr-interviews-go/internal/repository/postgres/interview"
	rediscache "hr-interviews-go/internal/repository/redis"
	"hr-interviews-go/internal/transport/httpserver"
	"hr-interviews-go/internal/transport/httpserver/handler"
	"hr-interviews-go/internal/transport/ws"
	"hr-interviews-go/pkg/logger"
	"hr-interviews-go/pkg/tracing"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB

	stopHub     context.CancelFunc
	kafka       *broker.KafkaPublisher
	redis       *rediscache.EmployeeCache
	stopTracing tracing.ShutdownFunc
}

// employeeCache is what both services need from a detail cache.
type employeeCache interface {
	employeedomain.Cache
	interviewdomain.EmployeeCache
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	log.Info("app: initializing tracing", "endpoint", cfg.Tracing.Endpoint)
	a.stopTracing, err = tracing.Init(context.Background(), cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.Tracing.Insecure)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(cfg.DB, log); err != nil {
			a.closeQuietly()
			return nil, err
		}
	}

	log.Info("app: initializing database")
	a.db, err = db.NewPostgres(cfg.DB, log)
	if err != nil {
		a.closeQuietly()
		return nil, err
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		a.closeQuietly()
		return nil, err
	}

	cache := a.newEmployeeCache()

	log.Info("app: initializing event publishers")
	hub := ws.NewHub(log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	a.stopHub = stopHub
	go hub.Run(hubCtx)

	publisher := events.Fanout{hub}
	if len(cfg.Events.KafkaBrokers) > 0 {
		a.kafka = broker.NewKafkaPublisher(cfg.Events, log)
		publisher = append(publisher, a.kafka)
	}

	employees := employeedomain.NewServiceWithDeps(employeerepo.NewPostgres(a.db), employeedomain.Deps{
		Cache:     cache,
		CacheTTL:  cfg.Cache.EmployeeTTL,
		Publisher: publisher,
		Log:       log,
	})
	interviews := interviewdomain.NewServiceWithDeps(interviewrepo.NewPostgres(a.db), interviewdomain.Deps{
		EmployeeCache: cache,
		Publisher:     publisher,
		Log:           log,
	})

	log.Info("app: initializing router")
	handlers := handler.New(sqlDB, employees, interviews, log)
	router := httpserver.NewRouter(cfg, handlers, ws.NewHandler(hub, cfg.CORSOrigins, log), log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) newEmployeeCache() employeeCache {
	if a.cfg.Cache.RedisURL == "" {
		a.log.Info("cache: using in-memory employee cache", "ttl", a.cfg.Cache.EmployeeTTL)
		if a.cfg.Env == "production" && a.cfg.Cache.EmployeeTTL > 0 {
			a.log.Warn("cache: in-memory employee cache is per process, set REDIS_URL or EMPLOYEE_CACHE_TTL=0 when running several replicas")
		}
		return inmemory.NewEmployeeCache()
	}

	cache, err := rediscache.NewEmployeeCache(context.Background(), a.cfg.Cache.RedisURL, a.log)
	if err != nil {
		a.log.Warn("cache: invalid redis config, using in-memory employee cache", "err", err)
		return inmemory.NewEmployeeCache()
	}
	a.redis = cache
	return cache
}

const shutdownTimeout = 10 * time.Second

// Run serves HTTP until ctx is cancelled or the listener fails, then drains
// in-flight requests and releases every dependency.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return errors.Join(fmt.Errorf("http: listen on %s: %w", a.httpServer.Addr, err), a.Close())
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	a.log.Info("http: listening", "addr", ln.Addr().String(), "pid", os.Getpid())

	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var errs []error
	select {
	case <-ctx.Done():
		a.log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			a.log.Critical("http: server failed", "addr", ln.Addr().String(), "err", err)
			errs = append(errs, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error("http: graceful shutdown failed", "err", err)
		errs = append(errs, err)
	}
	if err := a.Close(); err != nil {
		a.log.Error("app: close failed", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) Close() error {
	var errs []error

	if a.stopHub != nil {
		a.stopHub()
	}
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.stopTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.stopTracing(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (a *App) closeQuietly() {
	if err := a.Close(); err != nil {
		a.log.Warn("app: cleanup after failed init", "err", err)
	}
}
