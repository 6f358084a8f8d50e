// Package app assembles the stores, locks and services from configuration.
// Both server binaries start from New.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"roombooking/internal/config"
	"roombooking/internal/db"
	"roombooking/internal/events"
	"roombooking/internal/lock"
	"roombooking/internal/models"
	"roombooking/internal/repo"
	"roombooking/internal/seed"
	"roombooking/internal/service"
)

type App struct {
	Config  config.App
	Log     *zap.Logger
	Store   *service.Store
	Booking service.BookingService
	Search  service.SearchService
	Report  service.Report

	closers []func(context.Context) error
}

func New(ctx context.Context, cfg config.App, log *zap.Logger) (_ *App, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	seedRooms := seed.Default()
	if cfg.SeedFile != "" {
		if seedRooms, err = seed.Load(cfg.SeedFile); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	var mdb *mongo.Database
	if cfg.Uses(config.StoreMongo) {
		var mc *mongo.Client
		mc, mdb, err = db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, mc.Disconnect)
		if err = db.EnsureIndexes(ctx, mdb); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
	}
	var rdb *redis.Client
	if cfg.Uses(config.StoreRedis) {
		rdb, err = db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	}

	var rooms repo.CatalogRepo
	switch cfg.CatalogStore {
	case config.StoreMongo:
		rooms = repo.NewCatalogRepoMongo(mdb)
	case config.StoreRedis:
		rooms = repo.NewCatalogRepoRedis(rdb, cfg.RedisPrefix)
	default:
		rooms = repo.NewCatalogRepoFile(cfg.RoomsFile)
	}
	var bookings repo.LedgerRepo
	switch cfg.LedgerStore {
	case config.StoreMongo:
		bookings = repo.NewLedgerRepoMongo(mdb)
	case config.StoreRedis:
		bookings = repo.NewLedgerRepoRedis(rdb, cfg.RedisPrefix)
	default:
		bookings = repo.NewLedgerRepoFile(cfg.BookingsFile)
	}

	var pub events.Publisher = events.Nop{}
	if cfg.RabbitURL != "" {
		mq, err := events.NewAMQP(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return mq.Close() })
		pub = mq
	}

	if err = a.init(ctx, rooms, bookings, pub, seedRooms); err != nil {
		return nil, err
	}
	return a, nil
}

// NewWithRepos wires the services over already constructed repos.
func NewWithRepos(ctx context.Context, cfg config.App, log *zap.Logger, rooms repo.CatalogRepo, bookings repo.LedgerRepo, pub events.Publisher) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Log: log}
	if err := a.init(ctx, rooms, bookings, pub, seed.Default()); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, rooms repo.CatalogRepo, bookings repo.LedgerRepo, pub events.Publisher, seedRooms []models.Room) error {
	a.Store = service.NewStore(rooms, bookings, service.WithLogger(a.Log))
	rep, err := a.Store.Initialize(ctx, seedRooms)
	if err != nil {
		return err
	}
	a.Report = rep
	a.Booking = service.NewBookingService(a.Store, lock.NewLocal(a.Config.LockWait), pub, a.Log)
	a.Search = service.NewSearchService(a.Store)
	a.Log.Info("stores ready",
		zap.String("catalog", a.Config.CatalogStore),
		zap.String("ledger", a.Config.LedgerStore),
		zap.Bool("events", a.Config.RabbitURL != ""))
	return nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}
