package config

import (
	"time"

	"github.com/OldStager01/battery-health/pkg/models"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	API        APIConfig        `mapstructure:"api"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket"`
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Events     EventsConfig     `mapstructure:"events"`
	Source     SourceConfig     `mapstructure:"source"`
	Prediction PredictionConfig `mapstructure:"prediction"`
	Training   TrainingConfig   `mapstructure:"training"`
	Upload     UploadConfig     `mapstructure:"upload"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	Locale          string        `mapstructure:"locale"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type APIConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RateLimit      int           `mapstructure:"rate_limit"`
	MutateLimit    int           `mapstructure:"mutate_limit"`
	DefaultLimit   int           `mapstructure:"default_limit"`
	MaxLimit       int           `mapstructure:"max_limit"`
	SwaggerEnabled bool          `mapstructure:"swagger_enabled"`
	CORS           CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type WebSocketConfig struct {
	MaxConnections  int           `mapstructure:"max_connections"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	MaxMessageSize  int64         `mapstructure:"max_message_size"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	BroadcastBuffer int           `mapstructure:"broadcast_buffer"`
	ClientBuffer    int           `mapstructure:"client_buffer"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

// SourceConfig selects where trajectories come from: the in-process generator or an HTTP service.
type SourceConfig struct {
	Type           string               `mapstructure:"type"`
	Endpoint       string               `mapstructure:"endpoint"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	RetryAttempts  int                  `mapstructure:"retry_attempts"`
	RetryDelay     time.Duration        `mapstructure:"retry_delay"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Synthetic      SyntheticConfig      `mapstructure:"synthetic"`
}

type CircuitBreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type SyntheticConfig struct {
	Model      string  `mapstructure:"model"`
	Cycles     int     `mapstructure:"cycles"`
	InitialSOH float64 `mapstructure:"initial_soh"`
	DecayRate  float64 `mapstructure:"decay_rate"`
}

type PredictionConfig struct {
	DefaultCellID    string  `mapstructure:"default_cell_id"`
	Scale            float64 `mapstructure:"scale"`
	ThresholdMin     float64 `mapstructure:"threshold_min"`
	ThresholdMax     float64 `mapstructure:"threshold_max"`
	ThresholdDefault float64 `mapstructure:"threshold_default"`
}

func (p PredictionConfig) Bounds() models.ThresholdBounds {
	return models.ThresholdBounds{
		Min:     p.ThresholdMin,
		Max:     p.ThresholdMax,
		Default: p.ThresholdDefault,
	}
}

type TrainingConfig struct {
	Delay         time.Duration `mapstructure:"delay"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	HistorySize   int           `mapstructure:"history_size"`
}

type UploadConfig struct {
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxSizeBytes      int64    `mapstructure:"max_size_bytes"`
	HistorySize       int      `mapstructure:"history_size"`
}
