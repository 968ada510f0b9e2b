package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweetshop/inventory-api/internal/api/handler"
	"github.com/sweetshop/inventory-api/internal/api/middleware"
	"github.com/sweetshop/inventory-api/internal/core/ports"
	"github.com/sweetshop/inventory-api/internal/core/service"
	"github.com/sweetshop/inventory-api/internal/infrastructure/config"
	"github.com/sweetshop/inventory-api/internal/infrastructure/db/memory"
	mongostore "github.com/sweetshop/inventory-api/internal/infrastructure/db/mongo"
	redisstore "github.com/sweetshop/inventory-api/internal/infrastructure/db/redis"
)

// infra holds the storage-backed adapters selected by configuration.
type infra struct {
	users       ports.UserRepository
	sweets      ports.SweetRepository
	movements   ports.MovementRepository
	idempotency service.IdempotencyStore
	limiter     middleware.Limiter
	checks      map[string]handler.ReadinessCheck

	mongoClient *mongo.Client
	redisClient *goredis.Client
}

func openInfra(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*infra, error) {
	in := &infra{checks: make(map[string]handler.ReadinessCheck)}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		in.users = memory.NewUserRepository()
		in.sweets = memory.NewSweetRepository()
		in.movements = memory.NewMovementRepository()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
			Timeout:     cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		in.mongoClient = client
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			in.close(log)
			return nil, err
		}
		in.users = mongostore.NewUserRepository(db)
		in.sweets = mongostore.NewSweetRepository(db)
		in.movements = mongostore.NewMovementRepository(db)
		in.checks["mongodb"] = handler.MongoCheck(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	if cfg.Redis.Addr == "" {
		in.idempotency = memory.NewIdempotencyStore(cfg.HTTP.IdempotencyTTL)
		log.Info().Msg("redis not configured; rate limiting disabled, idempotency kept in memory")
		return in, nil
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		in.close(log)
		return nil, err
	}
	in.redisClient = rdb
	in.idempotency = redisstore.NewIdempotencyStore(rdb, cfg.HTTP.IdempotencyTTL)
	if cfg.RateLimit.Enabled {
		in.limiter = redisstore.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	in.checks["redis"] = handler.RedisCheck(rdb)
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	return in, nil
}

func (in *infra) close(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if in.redisClient != nil {
		if err := in.redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	if in.mongoClient != nil {
		if err := in.mongoClient.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}
