package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	Redis               Redis               `mapstructure:",squash"`
	Meta                Meta                `mapstructure:",squash"`
	Session             Session             `mapstructure:",squash"`
	Cors                Cors                `mapstructure:",squash"`
	Admin               Admin               `mapstructure:",squash"`
	Stream              Stream              `mapstructure:",squash"`
	Optimization        Optimization        `mapstructure:",squash"`
	InsightSnapshotSync InsightSnapshotSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// Meta agrupa tudo que é necessário para falar com a Graph API e com o
// diálogo OAuth do Facebook.
type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AppID          string        `mapstructure:"meta_app_id"`
	AppSecret      string        `mapstructure:"meta_app_secret"`
	RedirectURL    string        `mapstructure:"meta_redirect_url"`
	OAuthScopes    []string      `mapstructure:"meta_oauth_scopes"`
	OAuthAuthURL   string        `mapstructure:"meta_oauth_auth_url"`
	OAuthTokenURL  string        `mapstructure:"meta_oauth_token_url"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
	MaxPages       int           `mapstructure:"meta_max_pages"`
}

type Session struct {
	CookieSecret       string `mapstructure:"session_cookie_secret"`
	StateSecret        string `mapstructure:"session_state_secret"`
	TokenMaxAgeDays    int    `mapstructure:"session_token_max_age_days"`
	AccountsMaxAgeDays int    `mapstructure:"session_accounts_max_age_days"`
	SecureCookies      bool   `mapstructure:"session_secure_cookies"`
	DashboardURL       string `mapstructure:"session_dashboard_url"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Admin struct {
	Token string `mapstructure:"admin_token"`
}

type Stream struct {
	DefaultIntervalSeconds int `mapstructure:"stream_default_interval_seconds"`
	MinIntervalSeconds     int `mapstructure:"stream_min_interval_seconds"`
}

type Optimization struct {
	MinImpressions       int64   `mapstructure:"optimization_min_impressions"`
	MinSpend             float64 `mapstructure:"optimization_min_spend"`
	CTRWarningPercent    float64 `mapstructure:"optimization_ctr_warning_percent"`
	CPAWarningMultiplier float64 `mapstructure:"optimization_cpa_warning_multiplier"`
	ROASScaleThreshold   float64 `mapstructure:"optimization_roas_scale_threshold"`
	CompareConcurrency   int     `mapstructure:"optimization_compare_concurrency"`
}

type InsightSnapshotSync struct {
	CronSchedule        string `mapstructure:"insight_snapshot_sync_cron"`
	DatePreset          string `mapstructure:"insight_snapshot_sync_date_preset"`
	RequestDelaySeconds int    `mapstructure:"insight_snapshot_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"insight_snapshot_sync_max_concurrent_jobs"`
	RetentionDays       int    `mapstructure:"insight_snapshot_sync_retention_days"`
	Enabled             bool   `mapstructure:"insight_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v19.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URL", "http://localhost:8000/api/auth/callback")
	viper.SetDefault("META_OAUTH_SCOPES", "ads_read,ads_management,business_management")
	viper.SetDefault("META_OAUTH_AUTH_URL", "")
	viper.SetDefault("META_OAUTH_TOKEN_URL", "")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("META_MAX_PAGES", 10)

	viper.SetDefault("SESSION_COOKIE_SECRET", "change_me_cookie_secret")
	viper.SetDefault("SESSION_STATE_SECRET", "change_me_state_secret")
	viper.SetDefault("SESSION_TOKEN_MAX_AGE_DAYS", 60)
	viper.SetDefault("SESSION_ACCOUNTS_MAX_AGE_DAYS", 30)
	viper.SetDefault("SESSION_SECURE_COOKIES", true)
	viper.SetDefault("SESSION_DASHBOARD_URL", "http://localhost:3000/dashboard")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("ADMIN_TOKEN", "")

	viper.SetDefault("STREAM_DEFAULT_INTERVAL_SECONDS", 30)
	viper.SetDefault("STREAM_MIN_INTERVAL_SECONDS", 10)

	viper.SetDefault("OPTIMIZATION_MIN_IMPRESSIONS", 1000)
	viper.SetDefault("OPTIMIZATION_MIN_SPEND", 10.0)
	viper.SetDefault("OPTIMIZATION_CTR_WARNING_PERCENT", 0.5)
	viper.SetDefault("OPTIMIZATION_CPA_WARNING_MULTIPLIER", 1.5)
	viper.SetDefault("OPTIMIZATION_ROAS_SCALE_THRESHOLD", 3.0)
	viper.SetDefault("OPTIMIZATION_COMPARE_CONCURRENCY", 3)

	// Snapshot diário das campanhas de cada conta conectada
	viper.SetDefault("INSIGHT_SNAPSHOT_SYNC_CRON", "0 3 * * *")         // Todos os dias às 3h da manhã
	viper.SetDefault("INSIGHT_SNAPSHOT_SYNC_DATE_PRESET", "yesterday")  // Dia anterior completo
	viper.SetDefault("INSIGHT_SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("INSIGHT_SNAPSHOT_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("INSIGHT_SNAPSHOT_SYNC_RETENTION_DAYS", 400)      // Pouco mais de um ano de histórico
	viper.SetDefault("INSIGHT_SNAPSHOT_SYNC_ENABLED", false)

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

	config.Finalize()

	return config, nil
}

// Finalize calcula os campos derivados depois do unmarshal.
func (c *Config) Finalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
