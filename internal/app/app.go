package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/orgball2608/insta-competitor-bot/internal/bot"
	_ "github.com/orgball2608/insta-competitor-bot/internal/migrations"
	"github.com/orgball2608/insta-competitor-bot/internal/runner"
	"github.com/orgball2608/insta-competitor-bot/internal/scenes"
	"github.com/orgball2608/insta-competitor-bot/internal/scraper"
	"github.com/orgball2608/insta-competitor-bot/internal/scraper/apify"
	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/storage/postgres"
	"github.com/orgball2608/insta-competitor-bot/internal/storage/sqlite"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-competitor-bot/pkg/config"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"github.com/orgball2608/insta-competitor-bot/pkg/pgx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		newStorage,
		session.NewStore,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			apify.New,
			fx.As(new(scraper.Client)),
		),
	),
	fx.Provide(
		runner.New,
		scenes.NewProjectsScene,
		scenes.NewCompetitorsScene,
		scenes.NewHashtagsScene,
		scenes.NewScrapingScene,
		scenes.NewReelsScene,
		newManager,
		bot.New,
	),
	fx.Invoke(migrate),
	fx.Invoke(run),
)

// newStorage builds the adapter selected by STORAGE_DRIVER. The pgx pool is
// only created when the postgres driver is active.
func newStorage(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (storage.Adapter, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgx.New(pgx.Opts{LC: lc, Logger: log, Config: cfg})
		if err != nil {
			return nil, err
		}
		return postgres.NewPgx(pool, log), nil

	case "sqlite":
		adapter, err := sqlite.New(cfg.Sqlite.Path, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return adapter.Close()
			},
		})
		return adapter, nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
}

func newManager(
	store *session.Store,
	tg telegram.Client,
	log logger.Logger,
	projects *scenes.ProjectsScene,
	competitors *scenes.CompetitorsScene,
	hashtags *scenes.HashtagsScene,
	scraping *scenes.ScrapingScene,
	reels *scenes.ReelsScene,
) *scenes.Manager {
	return scenes.NewManager(store, tg, log, projects, competitors, hashtags, scraping, reels)
}

// migrate applies the versioned postgres schema. The sqlite adapter
// migrates itself on open.
func migrate(cfg *config.Config, log logger.Logger) error {
	if cfg.Storage.Driver != "postgres" {
		return nil
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("failed to open postgres for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, b *bot.Bot, r *runner.Runner) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)
			go b.Run(ctx)

			if err := r.Schedule(ctx); err != nil {
				log.Error("Failed to start scrape scheduler", "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
