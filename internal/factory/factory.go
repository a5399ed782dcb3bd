package factory

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/mcoot/kmnx-league/internal/datasource"
	"github.com/mcoot/kmnx-league/internal/dependencies/clock"
	"github.com/mcoot/kmnx-league/internal/dependencies/ids"
	"github.com/mcoot/kmnx-league/internal/services/classifier"
	"github.com/mcoot/kmnx-league/internal/services/league"
	"github.com/mcoot/kmnx-league/internal/services/results"
	"github.com/mcoot/kmnx-league/internal/services/standings"
	"github.com/mcoot/kmnx-league/internal/storage"
	filestorage "github.com/mcoot/kmnx-league/internal/storage/file"
	"github.com/mcoot/kmnx-league/internal/storage/memory"
	redisstorage "github.com/mcoot/kmnx-league/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage
	Source  datasource.Source

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	Classifier       *classifier.Service
	Standings        *standings.Service
	Results          *results.Service
	LeagueController *league.Controller

	Logger zerolog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Data is a data.json path or URL tried before the embedded sample
	// league (optional)
	Data string
	// Classifier holds the match timing rules (optional)
	// If zero value, defaults to classifier.DefaultConfig()
	Classifier classifier.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *zerolog.Logger
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// StateFile is the file store location (defaults to ~/.kmnx/state.json)
	StateFile string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Clock pins "now" (optional)
	// If nil, the system clock is used
	Clock clock.Clock
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		path := cfg.StateFile
		if path == "" {
			path = filestorage.DefaultPath()
		}
		store = filestorage.New(path)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	// Data source chain: configured location first, embedded sample last
	var sources []datasource.Source
	if src := datasource.ForLocation(cfg.Data); src != nil {
		sources = append(sources, src)
	}
	sources = append(sources, datasource.EmbeddedSource{})
	source := datasource.NewChain(logger, sources...)

	// Create external dependencies
	var clk clock.Clock = clock.New()
	if cfg.Clock != nil {
		clk = cfg.Clock
	}
	gen := ids.New()

	return newWithDependencies(store, source, clk, gen, cfg.Classifier, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	source datasource.Source,
	clk clock.Clock,
	gen ids.Generator,
	classifierCfg classifier.Config,
	logger zerolog.Logger,
) *App {
	// Create services
	classifierService := classifier.New(classifierCfg)
	standingsService := standings.New(classifierService)
	resultsService := results.New(classifierService)
	leagueController := league.NewController(store, source, classifierService, standingsService, resultsService, clk, gen, logger)

	return &App{
		Storage:          store,
		Source:           source,
		Clock:            clk,
		IDs:              gen,
		Classifier:       classifierService,
		Standings:        standingsService,
		Results:          resultsService,
		LeagueController: leagueController,
		Logger:           logger,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
