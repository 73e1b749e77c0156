// Package config 提供了统一的配置加载与管理能力.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wyfcoding/quantpricing/instrument"
	"github.com/wyfcoding/quantpricing/logging"
)

// Config 全局顶级配置结构.
type Config struct {
	Version   string          `mapstructure:"version"   toml:"version"`
	Log       LogConfig       `mapstructure:"log"       toml:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   toml:"metrics"`
	Tracing   TracingConfig   `mapstructure:"tracing"   toml:"tracing"`
	Valuation ValuationConfig `mapstructure:"valuation" toml:"valuation"`
	Market    MarketConfig    `mapstructure:"market"    toml:"market"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"`
	Format     string `mapstructure:"format"      toml:"format"      validate:"omitempty,oneof=json text"`
	File       string `mapstructure:"file"        toml:"file"`
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
	Console    bool   `mapstructure:"console"     toml:"console"`
}

// Logging 转换为 logging.Config.
func (c LogConfig) Logging(service, module string) logging.Config {
	return logging.Config{
		Service:    service,
		Module:     module,
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
		Console:    c.Console,
	}
}

// MetricsConfig 普罗米修斯监控指标配置.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace" toml:"namespace"`
	Enabled   bool   `mapstructure:"enabled"   toml:"enabled"`
}

// TracingConfig 链路追踪配置.
type TracingConfig struct {
	ServiceName  string  `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" toml:"otlp_endpoint" validate:"required_if=Enabled true"`
	SampleRatio  float64 `mapstructure:"sample_ratio"  toml:"sample_ratio"  validate:"gte=0,lte=1"`
	Enabled      bool    `mapstructure:"enabled"       toml:"enabled"`
}

// ValuationConfig 估值引擎参数.
type ValuationConfig struct {
	Workers int           `mapstructure:"workers" toml:"workers" validate:"min=1,max=1024"`
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
}

// MarketConfig 输入缺省时使用的行情参数（年化小数）.
type MarketConfig struct {
	Volatility   float64 `mapstructure:"volatility"     toml:"volatility"     validate:"gte=0"`
	RiskFreeRate float64 `mapstructure:"risk_free_rate" toml:"risk_free_rate"`
}

// Defaults 转换为持仓构造使用的缺省行情.
func (c MarketConfig) Defaults() instrument.Defaults {
	return instrument.Defaults{Volatility: c.Volatility, RiskFreeRate: c.RiskFreeRate}
}

var (
	hooksMu  sync.RWMutex
	onReload []func(*Config)
)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	onReload = append(onReload, hook)
}

func runReloadHooks(c *Config) {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	for _, hook := range onReload {
		hook(c)
	}
}

// SetDefaults 写入缺省值.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("version", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.namespace", "quantpricing")
	v.SetDefault("tracing.service_name", "quantpricing")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("valuation.workers", 4)
	v.SetDefault("valuation.timeout", 30*time.Second)
	v.SetDefault("market.volatility", 0.2)
	v.SetDefault("market.risk_free_rate", 0.0)
}

// Load 读取 TOML 配置文件，支持 APP_ 前缀的环境变量覆盖，并在文件变更时热更新.
func Load(path string, conf *Config) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}

	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)

		var next Config
		if err := v.Unmarshal(&next); err != nil {
			slog.Error("reload config unmarshal failed", "error", err)
			return
		}
		if err := validate.Struct(&next); err != nil {
			slog.Error("reload config validation failed", "error", err)
			return
		}

		logging.SetLevel(next.Log.Level)
		slog.Info("config hot-reloaded and validated successfully")
		runReloadHooks(&next)
	})
	v.WatchConfig()

	return v, nil
}
