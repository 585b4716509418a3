// Package config 加载服务配置：内置默认值 -> YAML 文件 -> .env -> DAYBOOK_ 环境变量。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"daybook-backend/internal/logging"
)

const (
	EnvPrefix     = "DAYBOOK_"
	EnvConfigPath = "DAYBOOK_CONFIG"

	maxConfigFileSize = 1024 * 1024
)

const defaultYAML = `
service:
  name: daybook
http:
  port: 8080
store:
  driver: mysql
  max_conns: 10
ai:
  provider: openai
  base_url: https://api.hunyuan.cloud.tencent.com/v1
  model: hunyuan-turbos-latest
  max_tokens: 1024
  temperature: 0.6
  timeout: 30s
  rate_limit: 2
  burst: 4
  max_retries: 2
  region: ap-guangzhou
journal:
  evening_cutoff_hour: 17
  timezone: Local
  stale_after: 24h
  context_days: 7
  ask_limit_per_day: 10
scheduler:
  enabled: true
  sweep_spec: "@every 15m"
  reminder_enabled: true
redis:
  db: 0
kafka:
  topic: daybook.events
logging:
  level: info
  format: json
`

type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	HTTP      HTTPConfig      `koanf:"http"`
	Store     StoreConfig     `koanf:"store"`
	AI        AIConfig        `koanf:"ai"`
	Journal   JournalConfig   `koanf:"journal"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Redis     RedisConfig     `koanf:"redis"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Logging   logging.Config  `koanf:"logging"`
}

type ServiceConfig struct {
	Name string `koanf:"name"`
}

type HTTPConfig struct {
	Port int `koanf:"port"`
}

// StoreConfig driver: mysql | postgres | memory
type StoreConfig struct {
	Driver      string `koanf:"driver"`
	MySQLDSN    string `koanf:"mysql_dsn"`
	PostgresDSN string `koanf:"postgres_dsn"`
	MaxConns    int32  `koanf:"max_conns"`
}

// AIConfig provider: openai | hunyuan | none
type AIConfig struct {
	Provider    string        `koanf:"provider"`
	BaseURL     string        `koanf:"base_url"`
	Token       string        `koanf:"token"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
	RateLimit   float64       `koanf:"rate_limit"`
	Burst       int           `koanf:"burst"`
	MaxRetries  int           `koanf:"max_retries"`
	SecretID    string        `koanf:"secret_id"`
	SecretKey   string        `koanf:"secret_key"`
	Region      string        `koanf:"region"`
	Endpoint    string        `koanf:"endpoint"`
}

type JournalConfig struct {
	EveningCutoffHour int           `koanf:"evening_cutoff_hour"`
	Timezone          string        `koanf:"timezone"`
	StaleAfter        time.Duration `koanf:"stale_after"`
	ContextDays       int           `koanf:"context_days"`
	AskLimitPerDay    int           `koanf:"ask_limit_per_day"`
}

type SchedulerConfig struct {
	Enabled         bool   `koanf:"enabled"`
	SweepSpec       string `koanf:"sweep_spec"`
	ReminderEnabled bool   `koanf:"reminder_enabled"`
}

// RedisConfig Addr 为空时提问次数只在进程内计数
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// KafkaConfig Brokers 为空时不发事件
type KafkaConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

// Load 读取配置。path 为空时取 DAYBOOK_CONFIG，仍为空则只用默认值和环境变量。
//
// 环境变量按第一个下划线拆分为 section.field_name：
//
//	DAYBOOK_STORE_MYSQL_DSN -> store.mysql_dsn
//	DAYBOOK_JOURNAL_EVENING_CUTOFF_HOUR -> journal.evening_cutoff_hour
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(defaultYAML)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// .env 不存在不算错误
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if len(content) > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	return content, nil
}

func applyDefaults(c *Config) {
	if c.Service.Name == "" {
		c.Service.Name = "daybook"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "mysql"
	}
	if c.Store.MaxConns <= 0 {
		c.Store.MaxConns = 10
	}
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = 1024
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.Journal.Timezone == "" {
		c.Journal.Timezone = "Local"
	}
	if c.Journal.StaleAfter <= 0 {
		c.Journal.StaleAfter = 24 * time.Hour
	}
	if c.Journal.ContextDays <= 0 {
		c.Journal.ContextDays = 7
	}
	if c.Journal.AskLimitPerDay <= 0 {
		c.Journal.AskLimitPerDay = 10
	}
	if c.Scheduler.SweepSpec == "" {
		c.Scheduler.SweepSpec = "@every 15m"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "daybook.events"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be 1..65535, got %d", c.HTTP.Port)
	}
	switch c.Store.Driver {
	case "mysql":
		if c.Store.MySQLDSN == "" {
			return errors.New("store.mysql_dsn is required for the mysql driver")
		}
	case "postgres":
		if c.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("store.driver must be mysql, postgres or memory, got %q", c.Store.Driver)
	}
	switch c.AI.Provider {
	case "openai", "hunyuan", "none":
	default:
		return fmt.Errorf("ai.provider must be openai, hunyuan or none, got %q", c.AI.Provider)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be 0..2, got %v", c.AI.Temperature)
	}
	if c.Journal.EveningCutoffHour < 0 || c.Journal.EveningCutoffHour > 24 {
		return fmt.Errorf("journal.evening_cutoff_hour must be 0..24, got %d", c.Journal.EveningCutoffHour)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Location 所有日界和周界使用的时区
func (c *Config) Location() (*time.Location, error) {
	if c.Journal.Timezone == "" || c.Journal.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Journal.Timezone)
	if err != nil {
		return nil, fmt.Errorf("journal.timezone %q: %w", c.Journal.Timezone, err)
	}
	return loc, nil
}

// Print 打印生效配置，密钥打码
func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, "service:        %s\n", c.Service.Name)
	fmt.Fprintf(w, "http port:      %d\n", c.HTTP.Port)
	fmt.Fprintf(w, "store driver:   %s\n", c.Store.Driver)
	fmt.Fprintf(w, "mysql dsn:      %s\n", redactDSN(c.Store.MySQLDSN))
	fmt.Fprintf(w, "postgres dsn:   %s\n", redactDSN(c.Store.PostgresDSN))
	fmt.Fprintf(w, "ai provider:    %s (%s)\n", c.AI.Provider, c.AI.Model)
	fmt.Fprintf(w, "ai token:       %s\n", redact(c.AI.Token))
	fmt.Fprintf(w, "ai secret key:  %s\n", redact(c.AI.SecretKey))
	fmt.Fprintf(w, "evening cutoff: %02d:00 %s\n", c.Journal.EveningCutoffHour, c.Journal.Timezone)
	fmt.Fprintf(w, "stale after:    %s\n", c.Journal.StaleAfter)
	fmt.Fprintf(w, "scheduler:      enabled=%v sweep=%q reminder=%v\n", c.Scheduler.Enabled, c.Scheduler.SweepSpec, c.Scheduler.ReminderEnabled)
	fmt.Fprintf(w, "redis:          %s\n", orNone(c.Redis.Addr))
	fmt.Fprintf(w, "kafka:          %s topic=%s\n", orNone(strings.Join(c.Kafka.Brokers, ",")), c.Kafka.Topic)
	fmt.Fprintf(w, "logging:        %s/%s\n", c.Logging.Level, c.Logging.Format)
}

func redact(s string) string {
	if s == "" {
		return "<none>"
	}
	return "****"
}

// redactDSN 只隐藏密码部分 user:pass@ -> user:****@
func redactDSN(dsn string) string {
	if dsn == "" {
		return "<none>"
	}
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	head := dsn[:at]
	colon := strings.LastIndex(head, ":")
	if colon < 0 {
		return dsn
	}
	return head[:colon+1] + "****" + dsn[at:]
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
