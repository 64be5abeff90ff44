package cli

import (
	"context"
	"os"

	"github.com/dailysync/upsc/pkg/adapter"
	"github.com/dailysync/upsc/pkg/agent"
	"github.com/dailysync/upsc/pkg/repository"
	"github.com/dailysync/upsc/pkg/service/scraper"
	"github.com/dailysync/upsc/pkg/usecase/content"
	"github.com/dailysync/upsc/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Repository
	project  string
	database string

	// Generation
	geminiProject  string
	geminiLocation string
	geminiModel    string

	// Scraper
	bucket      string
	cacheDir    string
	sourcesFile string

	logLevel string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("DAILYSYNC_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for the generation capability
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Generative model name",
			Value:       "gemini-2.0-flash-lite",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
	}
}

// scraperFlags returns flags for source fetching and the article cache
func scraperFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for the article cache (local directory when empty)",
			Sources:     cli.EnvVars("DAILYSYNC_BUCKET"),
			Destination: &cfg.bucket,
		},
		&cli.StringFlag{
			Name:        "cache-dir",
			Usage:       "Local directory for the article cache",
			Value:       "data",
			Sources:     cli.EnvVars("DAILYSYNC_CACHE_DIR"),
			Destination: &cfg.cacheDir,
		},
		&cli.StringFlag{
			Name:        "sources",
			Usage:       "YAML file listing news sources (built-in list when empty)",
			Sources:     cli.EnvVars("DAILYSYNC_SOURCES"),
			Destination: &cfg.sourcesFile,
		},
	}
}

// setupLogger attaches a logger at the configured level to the context
func (cfg *config) setupLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stdout)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}
	return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation,
		adapter.WithGenerativeModel(cfg.geminiModel))
}

// newStorage creates the article cache backend
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if cfg.bucket != "" {
		st, err := adapter.NewStorage(ctx, cfg.bucket)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create storage")
		}
		return st, nil
	}
	return adapter.NewLocalStorage(cfg.cacheDir)
}

// newScraper creates the source aggregator
func (cfg *config) newScraper(ctx context.Context) (*scraper.Client, error) {
	storage, err := cfg.newStorage(ctx)
	if err != nil {
		return nil, err
	}

	sources := scraper.DefaultSources()
	if cfg.sourcesFile != "" {
		sources, err = scraper.LoadSources(cfg.sourcesFile)
		if err != nil {
			return nil, err
		}
	}

	return scraper.New(storage, sources), nil
}

// newQueryUseCase wires a read-only use case. Query operations never
// touch the scraper or the generator, so those stay nil.
func newQueryUseCase(repo repository.Repository) *content.UseCase {
	return content.New(repo, nil, nil)
}

// newUseCase wires the full content pipeline
func (cfg *config) newUseCase(ctx context.Context) (*content.UseCase, error) {
	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, err
	}

	gemini, err := cfg.newGemini(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := cfg.newScraper(ctx)
	if err != nil {
		return nil, err
	}

	return content.New(repo, sc, agent.New(gemini)), nil
}
