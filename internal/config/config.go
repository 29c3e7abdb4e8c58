package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Data     DataConfig
	Forecast ForecastConfig
	Planner  PlannerConfig
	Snapshot SnapshotConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DataConfig selects the ingestion source for the three input tables.
// Source is "csv" or "postgres"; Dir holds orders.csv, recipes.csv and
// inventory.csv when the CSV source is active.
type DataConfig struct {
	Source string
	Dir    string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

// ForecastConfig drives the demand forecaster. UseML selects the learned
// strategy; Algorithm picks the regression backend behind it.
type ForecastConfig struct {
	UseML         bool
	Algorithm     string
	WinterFactor  float64
	SpringFactor  float64
	SummerFactor  float64
	FallFactor    float64
	WeekendFactor float64
}

// PlannerConfig holds the tunables of the optimization pipeline: expiry
// thresholds, recommendation score weights and the expiry-ratio safeguard.
type PlannerConfig struct {
	ExpiryThresholdDays    int
	RecommendLookaheadDays int
	ExpiryRatioThreshold   float64
	ExpiryRatioDamping     float64
	AvailabilityWeight     float64
	UrgencyWeight          float64
	SeasonalWeight         float64
	CostWeight             float64
	CostEfficiencyCeiling  float64
	MaxRecommendations     int
}

type SnapshotConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "fnb_optimizer")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("DATA_SOURCE", "csv")
		viper.SetDefault("DATA_DIR", "./data")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 300)
		viper.SetDefault("FORECAST_USE_ML", false)
		viper.SetDefault("FORECAST_ALGORITHM", "ridge")
		viper.SetDefault("FORECAST_WINTER_FACTOR", 1.3)
		viper.SetDefault("FORECAST_SPRING_FACTOR", 1.0)
		viper.SetDefault("FORECAST_SUMMER_FACTOR", 1.1)
		viper.SetDefault("FORECAST_FALL_FACTOR", 1.0)
		viper.SetDefault("FORECAST_WEEKEND_FACTOR", 1.2)
		viper.SetDefault("PLANNER_EXPIRY_THRESHOLD_DAYS", 3)
		viper.SetDefault("PLANNER_RECOMMEND_LOOKAHEAD_DAYS", 5)
		viper.SetDefault("PLANNER_EXPIRY_RATIO_THRESHOLD", 30.0)
		viper.SetDefault("PLANNER_EXPIRY_RATIO_DAMPING", 0.2)
		viper.SetDefault("PLANNER_AVAILABILITY_WEIGHT", 0.3)
		viper.SetDefault("PLANNER_URGENCY_WEIGHT", 0.4)
		viper.SetDefault("PLANNER_SEASONAL_WEIGHT", 0.2)
		viper.SetDefault("PLANNER_COST_WEIGHT", 0.1)
		viper.SetDefault("PLANNER_COST_EFFICIENCY_CEILING", 10.0)
		viper.SetDefault("PLANNER_MAX_RECOMMENDATIONS", 5)
		viper.SetDefault("SNAPSHOT_ENABLED", false)
		viper.SetDefault("SNAPSHOT_ENDPOINT", "")
		viper.SetDefault("SNAPSHOT_ACCESS_KEY", "")
		viper.SetDefault("SNAPSHOT_SECRET_KEY", "")
		viper.SetDefault("SNAPSHOT_BUCKET", "fnb-reports")
		viper.SetDefault("SNAPSHOT_REGION", "us-east-1")
		viper.SetDefault("SNAPSHOT_USE_SSL", true)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Data: DataConfig{
				Source: viper.GetString("DATA_SOURCE"),
				Dir:    viper.GetString("DATA_DIR"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Forecast: ForecastConfig{
				UseML:         viper.GetBool("FORECAST_USE_ML"),
				Algorithm:     viper.GetString("FORECAST_ALGORITHM"),
				WinterFactor:  viper.GetFloat64("FORECAST_WINTER_FACTOR"),
				SpringFactor:  viper.GetFloat64("FORECAST_SPRING_FACTOR"),
				SummerFactor:  viper.GetFloat64("FORECAST_SUMMER_FACTOR"),
				FallFactor:    viper.GetFloat64("FORECAST_FALL_FACTOR"),
				WeekendFactor: viper.GetFloat64("FORECAST_WEEKEND_FACTOR"),
			},
			Planner: PlannerConfig{
				ExpiryThresholdDays:    viper.GetInt("PLANNER_EXPIRY_THRESHOLD_DAYS"),
				RecommendLookaheadDays: viper.GetInt("PLANNER_RECOMMEND_LOOKAHEAD_DAYS"),
				ExpiryRatioThreshold:   viper.GetFloat64("PLANNER_EXPIRY_RATIO_THRESHOLD"),
				ExpiryRatioDamping:     viper.GetFloat64("PLANNER_EXPIRY_RATIO_DAMPING"),
				AvailabilityWeight:     viper.GetFloat64("PLANNER_AVAILABILITY_WEIGHT"),
				UrgencyWeight:          viper.GetFloat64("PLANNER_URGENCY_WEIGHT"),
				SeasonalWeight:         viper.GetFloat64("PLANNER_SEASONAL_WEIGHT"),
				CostWeight:             viper.GetFloat64("PLANNER_COST_WEIGHT"),
				CostEfficiencyCeiling:  viper.GetFloat64("PLANNER_COST_EFFICIENCY_CEILING"),
				MaxRecommendations:     viper.GetInt("PLANNER_MAX_RECOMMENDATIONS"),
			},
			Snapshot: SnapshotConfig{
				Enabled:   viper.GetBool("SNAPSHOT_ENABLED"),
				Endpoint:  viper.GetString("SNAPSHOT_ENDPOINT"),
				AccessKey: viper.GetString("SNAPSHOT_ACCESS_KEY"),
				SecretKey: viper.GetString("SNAPSHOT_SECRET_KEY"),
				Bucket:    viper.GetString("SNAPSHOT_BUCKET"),
				Region:    viper.GetString("SNAPSHOT_REGION"),
				UseSSL:    viper.GetBool("SNAPSHOT_USE_SSL"),
			},
		}
	})

	return instance
}

// DefaultForecast returns the stock factor set used when no config has been
// loaded (library callers, tests).
func DefaultForecast() ForecastConfig {
	return ForecastConfig{
		Algorithm:     "ridge",
		WinterFactor:  1.3,
		SpringFactor:  1.0,
		SummerFactor:  1.1,
		FallFactor:    1.0,
		WeekendFactor: 1.2,
	}
}

// DefaultPlanner mirrors the PLANNER_* viper defaults for library callers.
func DefaultPlanner() PlannerConfig {
	return PlannerConfig{
		ExpiryThresholdDays:    3,
		RecommendLookaheadDays: 5,
		ExpiryRatioThreshold:   30.0,
		ExpiryRatioDamping:     0.2,
		AvailabilityWeight:     0.3,
		UrgencyWeight:          0.4,
		SeasonalWeight:         0.2,
		CostWeight:             0.1,
		CostEfficiencyCeiling:  10.0,
		MaxRecommendations:     5,
	}
}
