// Package config loads process configuration from an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fpoconsole/internal/aggregate"
	"fpoconsole/internal/blob"
	"fpoconsole/internal/query"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SeedDriverEmbedded selects the dataset compiled into the binary.
const SeedDriverEmbedded = "embedded"

// Environment variable names.
const (
	EnvConfigFile        = "FPO_CONFIG_FILE"
	EnvLogLevel          = "FPO_LOG_LEVEL"
	EnvLogFormat         = "FPO_LOG_FORMAT"
	EnvSeedDriver        = "FPO_SEED_DRIVER"
	EnvSeedKey           = "FPO_SEED_KEY"
	EnvBlobFSRoot        = "FPO_BLOB_FS_ROOT"
	EnvS3Bucket          = "FPO_BLOB_S3_BUCKET"
	EnvS3Region          = "FPO_BLOB_S3_REGION"
	EnvS3Endpoint        = "FPO_BLOB_S3_ENDPOINT"
	EnvS3PathStyle       = "FPO_BLOB_S3_PATH_STYLE"
	EnvPageSize          = "FPO_PAGE_SIZE"
	EnvCrops             = "FPO_CROPS"
	EnvRevenueCategories = "FPO_REVENUE_CATEGORIES"
	EnvMetrics           = "FPO_METRICS"
	EnvStoreDriver       = "FPO_STORE_DRIVER"
	EnvSQLitePath        = "FPO_SQLITE_PATH"
	EnvPostgresDSN       = "FPO_POSTGRES_DSN"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// S3Config locates the seed bucket.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// SeedConfig selects where the startup dataset is read from.
type SeedConfig struct {
	Driver string   `yaml:"driver" validate:"oneof=embedded fs s3"`
	Key    string   `yaml:"key"`
	FSRoot string   `yaml:"fs_root"`
	S3     S3Config `yaml:"s3"`
}

// StoreConfig selects where entity state lives between runs.
type StoreConfig struct {
	Driver      string `yaml:"driver" validate:"oneof=memory sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Config is the full process configuration.
type Config struct {
	Log               LogConfig   `yaml:"log"`
	Seed              SeedConfig  `yaml:"seed"`
	Store             StoreConfig `yaml:"store"`
	PageSize          int         `yaml:"page_size" validate:"gte=1,lte=500"`
	Crops             []string    `yaml:"crops" validate:"dive,required"`
	RevenueCategories []string    `yaml:"revenue_categories" validate:"dive,required"`
	Metrics           bool        `yaml:"metrics"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Log:               LogConfig{Level: "info", Format: "json"},
		Seed:              SeedConfig{Driver: SeedDriverEmbedded},
		Store:             StoreConfig{Driver: StoreMemory},
		PageSize:          query.DefaultPageSize,
		Crops:             append([]string(nil), aggregate.DefaultCrops...),
		RevenueCategories: append([]string(nil), aggregate.DefaultRevenueCategories...),
	}
}

// Loader reads configuration. The zero value reads the process environment
// and a .env file in the working directory.
type Loader struct {
	// EnvFiles are loaded with godotenv before the environment is read.
	// Missing files are skipped. Nil means ".env".
	EnvFiles []string
	// Getenv overrides os.Getenv.
	Getenv func(string) string
}

// Load resolves the configuration and validates it.
func Load() (Config, error) {
	return Loader{}.Load()
}

// Load resolves the configuration and validates it.
func (l Loader) Load() (Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return Config{}, err
	}
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	if path := getenv(EnvConfigFile); path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l Loader) loadEnvFiles() error {
	files := l.EnvFiles
	if files == nil {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setString(EnvLogLevel, &cfg.Log.Level)
	setString(EnvLogFormat, &cfg.Log.Format)
	setString(EnvSeedDriver, &cfg.Seed.Driver)
	setString(EnvSeedKey, &cfg.Seed.Key)
	setString(EnvBlobFSRoot, &cfg.Seed.FSRoot)
	setString(EnvS3Bucket, &cfg.Seed.S3.Bucket)
	setString(EnvS3Region, &cfg.Seed.S3.Region)
	setString(EnvS3Endpoint, &cfg.Seed.S3.Endpoint)
	setString(EnvStoreDriver, &cfg.Store.Driver)
	setString(EnvSQLitePath, &cfg.Store.SQLitePath)
	setString(EnvPostgresDSN, &cfg.Store.PostgresDSN)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Seed.Driver = strings.ToLower(cfg.Seed.Driver)
	cfg.Store.Driver = strings.ToLower(cfg.Store.Driver)

	if v := getenv(EnvS3PathStyle); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvS3PathStyle, err)
		}
		cfg.Seed.S3.PathStyle = b
	}
	if v := getenv(EnvMetrics); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMetrics, err)
		}
		cfg.Metrics = b
	}
	if v := getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		cfg.PageSize = n
	}
	if v := getenv(EnvCrops); v != "" {
		cfg.Crops = splitList(v)
	}
	if v := getenv(EnvRevenueCategories); v != "" {
		cfg.RevenueCategories = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Seed.Driver == string(blob.DriverS3) && c.Seed.S3.Bucket == "" {
		return fmt.Errorf("invalid config: %s is required for the s3 seed driver", EnvS3Bucket)
	}
	return nil
}

// Blob returns the blob store configuration for the seed source. It reports
// false when the embedded dataset is selected.
func (c Config) Blob() (blob.Config, bool) {
	if c.Seed.Driver == SeedDriverEmbedded {
		return blob.Config{}, false
	}
	return blob.Config{
		Driver: blob.Driver(c.Seed.Driver),
		FSRoot: c.Seed.FSRoot,
		S3: blob.S3Config{
			Bucket:    c.Seed.S3.Bucket,
			Region:    c.Seed.S3.Region,
			Endpoint:  c.Seed.S3.Endpoint,
			PathStyle: c.Seed.S3.PathStyle,
		},
	}, true
}

// Aggregate returns the dashboard options.
func (c Config) Aggregate() aggregate.Options {
	return aggregate.Options{Crops: c.Crops, RevenueCategories: c.RevenueCategories}
}
