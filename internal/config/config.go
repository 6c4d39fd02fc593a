package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	RateLimit   RateLimit   `mapstructure:",squash"`
	EntitySync  EntitySync  `mapstructure:",squash"`
	InsightSync InsightSync `mapstructure:",squash"`
	Scheduler   Scheduler   `mapstructure:",squash"`
	Rollup      Rollup      `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type Meta struct {
	BaseURL           string            `mapstructure:"meta_base_url"`
	URL               string            `mapstructure:"meta_url"`
	Version           string            `mapstructure:"meta_version"`
	AccessToken       string            `mapstructure:"meta_access_token"`
	AccountTokens     []string          `mapstructure:"meta_account_tokens"`
	RequestsPerSecond float64           `mapstructure:"meta_requests_per_second"`
	PageLimit         int               `mapstructure:"meta_page_limit"`
	HTTPTimeout       time.Duration     `mapstructure:"meta_http_timeout"`
	TokensByAccount   map[string]string `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type RateLimit struct {
	ThresholdPercent float64       `mapstructure:"rate_limit_threshold_percent"`
	Cooldown         time.Duration `mapstructure:"rate_limit_cooldown"`
}

type EntitySync struct {
	ClockSkew time.Duration `mapstructure:"entity_sync_clock_skew"`
}

type InsightSync struct {
	ChunkSize int `mapstructure:"insight_sync_chunk_size"`
}

type Scheduler struct {
	DailyCron         string `mapstructure:"sync_daily_cron"`
	HourlyCron        string `mapstructure:"sync_hourly_cron"`
	RetentionCron     string `mapstructure:"sync_retention_cron"`
	LookbackDays      int    `mapstructure:"sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"sync_max_concurrent_accounts"`
	Enabled           bool   `mapstructure:"sync_enabled"`
}

type Rollup struct {
	QueueSize int `mapstructure:"rollup_queue_size"`
	Workers   int `mapstructure:"rollup_workers"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/traffic?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_ACCOUNT_TOKENS", "")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("META_PAGE_LIMIT", 500)
	viper.SetDefault("META_HTTP_TIMEOUT", "60s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Limitador de requisições por conta
	viper.SetDefault("RATE_LIMIT_THRESHOLD_PERCENT", 70) // Pausa a partir de 70% de uso
	viper.SetDefault("RATE_LIMIT_COOLDOWN", "30s")

	viper.SetDefault("ENTITY_SYNC_CLOCK_SKEW", "1h") // Margem do incremental
	viper.SetDefault("INSIGHT_SYNC_CHUNK_SIZE", 50)  // Anúncios por requisição

	viper.SetDefault("SYNC_DAILY_CRON", "0 3 * * *")    // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_HOURLY_CRON", "15 * * * *")  // A cada hora, aos 15 minutos
	viper.SetDefault("SYNC_RETENTION_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 3)
	viper.SetDefault("SYNC_MAX_CONCURRENT_ACCOUNTS", 3)
	viper.SetDefault("SYNC_ENABLED", false)

	viper.SetDefault("ROLLUP_QUEUE_SIZE", 100)
	viper.SetDefault("ROLLUP_WORKERS", 1)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.finalize()

	return config, nil
}

// finalize preenche os campos derivados
func (c *Config) finalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)
	c.Meta.TokensByAccount = ParseAccountTokens(c.Meta.AccountTokens)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// ParseAccountTokens converte entradas "conta=token" em mapa
func ParseAccountTokens(entries []string) map[string]string {
	tokens := make(map[string]string)
	for _, entry := range entries {
		accountID, token, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || accountID == "" || token == "" {
			continue
		}
		tokens[strings.TrimSpace(accountID)] = strings.TrimSpace(token)
	}
	return tokens
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
