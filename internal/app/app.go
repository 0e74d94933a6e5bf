package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/cache"
	"github.com/GlebRadaev/gymslot/internal/config"
	"github.com/GlebRadaev/gymslot/internal/consumer"
	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/handlers"
	"github.com/GlebRadaev/gymslot/internal/notify"
	"github.com/GlebRadaev/gymslot/internal/pg"
	"github.com/GlebRadaev/gymslot/internal/repo"
	"github.com/GlebRadaev/gymslot/internal/scheduler"
	"github.com/GlebRadaev/gymslot/internal/service"
	"github.com/GlebRadaev/gymslot/internal/service/bookingservice"
	"github.com/GlebRadaev/gymslot/internal/service/slotservice"
	"github.com/GlebRadaev/gymslot/pkg/auth"
	"github.com/GlebRadaev/gymslot/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	loc  *time.Location
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	pool       *pgxpool.Pool
	rdb        *redis.Client
	broker     *amqp.Connection
	dispatcher *notify.Dispatcher
	payments   *consumer.PaymentConsumer

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't parse config: %w", err)
	}

	if err = logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("can't load timezone %q: %w", cfg.Timezone, err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	a.cfg = cfg
	a.loc = loc
	a.pool = pool

	slotCache := a.slotCache(ctx)
	sink, err := a.notificationSink()
	if err != nil {
		return fmt.Errorf("can't connect to broker: %w", err)
	}
	a.dispatcher = notify.NewDispatcher(sink, cfg.NotifyWorkers, cfg.NotifyQueue)

	conn := pg.New(pool)
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, service.Options{
		SlotCache:   slotCache,
		Notifier:    a.dispatcher,
		Location:    loc,
		HorizonDays: cfg.HorizonDays,
		Pricing: bookingservice.Pricing{
			domain.BookingEquipment: cfg.PriceEquipment,
			domain.BookingSession:   cfg.PriceSession,
			domain.BookingInBody:    cfg.PriceInBody,
		},
	})
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret), loc)

	if a.broker != nil {
		ch, err := a.broker.Channel()
		if err != nil {
			return fmt.Errorf("can't open payment channel: %w", err)
		}
		a.payments, err = consumer.NewPaymentConsumer(ch, cfg.AMQPExchange, cfg.PaymentQueue, a.srv.LedgerService)
		if err != nil {
			return fmt.Errorf("can't declare payment queue: %w", err)
		}
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startReconciler(ctx)
	a.startPaymentConsumer(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// slotCache falls back to no caching when redis is absent or unreachable.
func (a *Application) slotCache(ctx context.Context) slotservice.Cache {
	if a.cfg.RedisAddr == "" {
		return cache.Nop{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unavailable, slot cache disabled", zap.String("addr", a.cfg.RedisAddr), zap.Error(err))
		rdb.Close()
		return cache.Nop{}
	}
	a.rdb = rdb
	return cache.NewSlotCache(rdb, a.loc)
}

func (a *Application) notificationSink() (notify.Sink, error) {
	if a.cfg.AMQPURL == "" {
		zap.L().Info("no broker configured, notifications go to the log")
		return notify.LogSink{}, nil
	}
	broker, err := amqp.Dial(a.cfg.AMQPURL)
	if err != nil {
		return nil, err
	}
	ch, err := broker.Channel()
	if err != nil {
		broker.Close()
		return nil, err
	}
	sink, err := notify.NewRabbitSink(ch, a.cfg.AMQPExchange)
	if err != nil {
		broker.Close()
		return nil, err
	}
	a.broker = broker
	return sink, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startReconciler(ctx context.Context) {
	job := &scheduler.Periodic{
		Name:         "reconcile",
		Task:         a.srv.Reconcile.Task,
		Clock:        scheduler.RealClock{},
		Location:     a.loc,
		RetryBackoff: a.cfg.ReconcileRetry,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		job.Run(ctx)
	}()
}

func (a *Application) startPaymentConsumer(ctx context.Context) {
	if a.payments == nil {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.payments.Run(ctx); err != nil && ctx.Err() == nil {
			a.errCh <- fmt.Errorf("payment consumer exited with error: %w", err)
		}
	}()
}

// shutdown releases connections after every worker has returned.
func (a *Application) shutdown() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	if a.broker != nil {
		a.broker.Close()
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()
	a.shutdown()

	return appErr
}
