package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	managerx "github.com/tanpawarit/Chative-Learning-Agents/agent/agents/manager"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
	historyx "github.com/tanpawarit/Chative-Learning-Agents/agent/history"
	recordsx "github.com/tanpawarit/Chative-Learning-Agents/agent/records"
	tuningx "github.com/tanpawarit/Chative-Learning-Agents/agent/tuning"
	configx "github.com/tanpawarit/Chative-Learning-Agents/pkg/config"
	databasex "github.com/tanpawarit/Chative-Learning-Agents/pkg/database"
	redisx "github.com/tanpawarit/Chative-Learning-Agents/pkg/redis"
	"github.com/uptrace/bun"
)

type HTTPConfig struct {
	Addr              string        `envconfig:"ADDR" default:":8080"`
	ReadHeaderTimeout time.Duration `split_words:"true" default:"5s"`
	ShutdownTimeout   time.Duration `split_words:"true" default:"10s"`
}

type app struct {
	db      *bun.DB
	redis   *goredis.Client
	cache   *historyx.RedisLog
	store   *recordsx.Store
	manager *managerx.Manager
}

func openDatabase(ctx context.Context) (*bun.DB, error) {
	dbCfg, err := configx.New[databasex.Config]("DATABASE")
	if err != nil {
		return nil, err
	}
	db, err := databasex.Open(*dbCfg)
	if err != nil {
		return nil, err
	}
	if err := recordsx.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newApp(ctx context.Context) (*app, error) {
	tuning, err := configx.New[tuningx.Config]("AGENT")
	if err != nil {
		return nil, err
	}
	redisCfg, err := configx.New[redisx.Config]("REDIS")
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}

	a := &app{db: db, store: recordsx.NewStore(db)}

	var interactions contractx.InteractionLog = a.store
	if redisCfg.Enabled {
		client, err := redisx.NewClient(*redisCfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		if err := redisx.Ping(ctx, client); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, interaction history served from database")
		} else {
			cache, err := historyx.NewRedisLog(client)
			if err != nil {
				a.Close()
				return nil, err
			}
			a.cache = cache
			interactions = historyx.NewFanOut(cache, a.store)
		}
	}

	logger := log.Logger
	m, err := managerx.New(a.store, interactions, managerx.Config{
		Tuning: tuning,
		Logger: &logger,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build agent manager: %w", err)
	}
	m.Init()
	a.manager = m

	return a, nil
}

// Close drains pending interaction writes before releasing connections.
func (a *app) Close() error {
	if a.manager != nil {
		a.manager.Wait()
	}
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
