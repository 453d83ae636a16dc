package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "BATTERY"

// Loader keeps the viper instance around so the file can be watched after the first load.
type Loader struct {
	v *viper.Viper
}

func NewLoader(configPath string) *Loader {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/battery-health")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ConfigFile reports the file in use, empty when running on defaults and env only.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with every valid config produced by a file write.
// Invalid edits are reported through onError and otherwise ignored.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.ConfigFile() == "" {
		return
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.unmarshal()
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func Load(configPath string) (*Config, error) {
	return NewLoader(configPath).Load()
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "battery-health")
	v.SetDefault("app.mode", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.locale", "en")
	v.SetDefault("app.shutdown_timeout", "30s")

	// API defaults
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.read_timeout", "15s")
	v.SetDefault("api.write_timeout", "15s")
	v.SetDefault("api.idle_timeout", "60s")
	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.mutate_limit", 20)
	v.SetDefault("api.default_limit", 20)
	v.SetDefault("api.max_limit", 100)
	v.SetDefault("api.swagger_enabled", true)
	v.SetDefault("api.cors.allowed_origins", []string{"*"})

	// WebSocket defaults
	v.SetDefault("websocket.max_connections", 1000)
	v.SetDefault("websocket.ping_interval", "54s")
	v.SetDefault("websocket.pong_timeout", "60s")
	v.SetDefault("websocket.write_timeout", "10s")
	v.SetDefault("websocket.max_message_size", 512)
	v.SetDefault("websocket.broadcast_buffer", 256)
	v.SetDefault("websocket.client_buffer", 256)

	// Prometheus defaults
	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")

	v.SetDefault("events.buffer_size", 100)

	// Source defaults
	v.SetDefault("source.type", "synthetic")
	v.SetDefault("source.endpoint", "http://localhost:9000")
	v.SetDefault("source.timeout", "5s")
	v.SetDefault("source.retry_attempts", 3)
	v.SetDefault("source.retry_delay", "500ms")
	v.SetDefault("source.circuit_breaker.max_failures", 5)
	v.SetDefault("source.circuit_breaker.timeout", "30s")
	v.SetDefault("source.synthetic.model", "exponential")
	v.SetDefault("source.synthetic.cycles", 500)
	v.SetDefault("source.synthetic.initial_soh", 100.0)
	v.SetDefault("source.synthetic.decay_rate", 0.001)

	// Prediction defaults
	v.SetDefault("prediction.default_cell_id", "demo-cell")
	v.SetDefault("prediction.scale", 100.0)
	v.SetDefault("prediction.threshold_min", 50.0)
	v.SetDefault("prediction.threshold_max", 90.0)
	v.SetDefault("prediction.threshold_default", 80.0)

	// Training defaults
	v.SetDefault("training.delay", "2s")
	v.SetDefault("training.max_concurrent", 4)
	v.SetDefault("training.history_size", 50)

	// Upload defaults
	v.SetDefault("upload.allowed_extensions", []string{"csv", "xlsx", "xls"})
	v.SetDefault("upload.max_size_bytes", 10<<20)
	v.SetDefault("upload.history_size", 50)
}
