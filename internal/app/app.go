// This package is used to initialize the application. It has dependencies on most
// other packages and wires the optional draw journal and metrics server around
// the question pool.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/petuhovskiy/qsampler/internal/bgjobs"
	"github.com/petuhovskiy/qsampler/internal/conf"
	"github.com/petuhovskiy/qsampler/internal/log"
	"github.com/petuhovskiy/qsampler/internal/models"
	"github.com/petuhovskiy/qsampler/internal/repos"
	"github.com/petuhovskiy/qsampler/internal/wpool"
)

type App struct {
	Config   *conf.App
	Register *bgjobs.Register
	Recorder *DrawRecorder

	// DB is nil when the draw journal is disabled.
	DB   *gorm.DB
	repo *Repos
	// Run is the number of this invocation, zero without the journal.
	Run  uint

	metricsServer *http.Server
}

func NewApp(cfg *conf.App) (*App, error) {
	a := &App{
		Config:   cfg,
		Register: bgjobs.NewRegister(),
	}

	var saver DrawSaver
	if cfg.PostgresDSN != "" {
		db, err := connectDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		repo, err := createRepos(db, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create repos: %w", err)
		}

		run, err := repo.Run.Next(cfg.Session)
		if err != nil {
			return nil, fmt.Errorf("failed to get run number: %w", err)
		}

		a.DB = db
		a.repo = repo
		a.Run = run
		saver = repos.NewDrawSaver(repo.Draw, repos.DrawSaverArgs{
			Session: cfg.Session,
			Run:     run,
		})
	}

	a.Recorder = NewDrawRecorder(saver)
	return a, nil
}

// NewPool creates a question pool with a random source seeded from config.
func (a *App) NewPool(items []wpool.Item[models.Question], opts wpool.Options) (*wpool.Pool[models.Question], error) {
	seed := a.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug(context.Background(), "creating pool",
		zap.Int("items", len(items)),
		zap.Int64("seed", seed),
		zap.Bool("with_replacement", opts.WithReplacement),
		zap.Bool("equal_weights", opts.EqualWeights),
	)

	pool, err := wpool.New(items, opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	PoolActiveItems.Set(float64(pool.Active()))
	return pool, nil
}

// StartPrometheus serves /metrics in background if PrometheusBind is set.
func (a *App) StartPrometheus() {
	if a.Config.PrometheusBind == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metricsServer = &http.Server{
		Addr:              a.Config.PrometheusBind,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srv := a.metricsServer
	a.Register.Go(func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error(context.TODO(), "prometheus server error", zap.Error(err))
		}
	})
}

// Shutdown stops background jobs and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	var retErr error
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			retErr = fmt.Errorf("failed to stop prometheus server: %w", err)
		}
	}

	if err := a.Register.WaitAll(ctx); err != nil {
		retErr = errors.Join(retErr, err)
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			retErr = errors.Join(retErr, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return retErr
}

func connectDB(cfg *conf.App) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

type Repos struct {
	Draw *repos.DrawRepo
	Run  *repos.RunRepo
}

func createRepos(db *gorm.DB, cfg *conf.App) (*Repos, error) {
	err := db.AutoMigrate(
		&models.Draw{},
		&models.RunCounter{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	if cfg.DebugDB {
		db = db.Debug()
	}

	return &Repos{
		Draw: repos.NewDrawRepo(db),
		Run:  repos.NewRunRepo(db),
	}, nil
}
