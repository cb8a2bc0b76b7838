package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"quizku_backend/internals/logger"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// localJWTSecret lets `APP_ENV=local` boot without a secret. Never used elsewhere.
const localJWTSecret = "quizku-local-secret"

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP relay is configured.
func (s SMTPConfig) Enabled() bool { return strings.TrimSpace(s.Host) != "" }

type OSSConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Prefix       string
	SignedURLTTL time.Duration
}

func (o OSSConfig) Enabled() bool {
	return o.Endpoint != "" && o.AccessKey != "" && o.SecretKey != "" && o.Bucket != ""
}

type DBConfig struct {
	Driver     string // postgres | sqlite
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// AppConfig is the typed view over env + optional config/config.yaml.
type AppConfig struct {
	Env           string
	Port          string
	PublicBaseURL string
	LogLevel      string
	CORSOrigins   []string

	JWTSecret string
	TokenTTL  time.Duration

	DB DBConfig

	QuizSampleSize int
	QuizTimeLimit  time.Duration

	SMTP SMTPConfig
	OSS  OSSConfig

	ArtifactDir        string
	ArtifactRetention  time.Duration
	ArtifactReaperCron string
	BlacklistCron      string

	SeedOnStart       bool
	SeedQuestionsPath string
	AdminUsername     string
	AdminPassword     string
}

func (c *AppConfig) IsLocal() bool { return c.Env == "local" }

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logger.L().Info("no .env file found, using system environment")
		} else {
			logger.L().Info(".env file loaded")
		}
	} else {
		logger.L().Info("running on Railway, using system environment")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("app_env", "local")
	v.SetDefault("port", "3001")
	v.SetDefault("public_base_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("token_ttl", "24h")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_sslmode", "require")
	v.SetDefault("sqlite_path", "quizku.db")

	v.SetDefault("quiz_sample_size", 6)
	v.SetDefault("quiz_time_limit", "300s")

	v.SetDefault("smtp_port", 587)
	v.SetDefault("from_email", "")

	v.SetDefault("artifact_dir", "temp")
	v.SetDefault("artifact_retention", "24h")
	v.SetDefault("artifact_reaper_cron", "@every 1h")
	v.SetDefault("token_blacklist_cron", "@every 1h")

	v.SetDefault("ali_oss_prefix", "certificates")
	v.SetDefault("ali_oss_signed_url_ttl", "24h")

	v.SetDefault("seed_on_start", false)
	v.SetDefault("seed_questions_path", "internals/seeds/quiz/questions/data_questions.json")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "admin123")

	v.AutomaticEnv()
	return v
}

// Load reads config/config.yaml (if present) and the environment.
func Load() (*AppConfig, error) {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		Env:           strings.ToLower(v.GetString("app_env")),
		Port:          v.GetString("port"),
		PublicBaseURL: strings.TrimRight(v.GetString("public_base_url"), "/"),
		LogLevel:      v.GetString("log_level"),
		CORSOrigins:   splitCSV(v.GetString("cors_origins")),

		JWTSecret: v.GetString("jwt_secret"),
		TokenTTL:  v.GetDuration("token_ttl"),

		DB: DBConfig{
			Driver:     strings.ToLower(v.GetString("db_driver")),
			URL:        v.GetString("database_url"),
			Host:       v.GetString("db_host"),
			Port:       v.GetString("db_port"),
			User:       v.GetString("db_user"),
			Password:   v.GetString("db_password"),
			Name:       v.GetString("db_name"),
			SSLMode:    v.GetString("db_sslmode"),
			SQLitePath: v.GetString("sqlite_path"),
		},

		QuizSampleSize: v.GetInt("quiz_sample_size"),
		QuizTimeLimit:  v.GetDuration("quiz_time_limit"),

		SMTP: SMTPConfig{
			Host:     v.GetString("smtp_host"),
			Port:     v.GetInt("smtp_port"),
			Username: v.GetString("smtp_user"),
			Password: v.GetString("smtp_pass"),
			From:     v.GetString("from_email"),
		},
		OSS: OSSConfig{
			Endpoint:     v.GetString("ali_oss_endpoint"),
			AccessKey:    v.GetString("ali_oss_access_key"),
			SecretKey:    v.GetString("ali_oss_secret_key"),
			Bucket:       v.GetString("ali_oss_bucket"),
			Prefix:       v.GetString("ali_oss_prefix"),
			SignedURLTTL: v.GetDuration("ali_oss_signed_url_ttl"),
		},

		ArtifactDir:        v.GetString("artifact_dir"),
		ArtifactRetention:  v.GetDuration("artifact_retention"),
		ArtifactReaperCron: v.GetString("artifact_reaper_cron"),
		BlacklistCron:      v.GetString("token_blacklist_cron"),

		SeedOnStart:       v.GetBool("seed_on_start"),
		SeedQuestionsPath: v.GetString("seed_questions_path"),
		AdminUsername:     v.GetString("admin_username"),
		AdminPassword:     v.GetString("admin_password"),
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.QuizSampleSize <= 0 {
		cfg.QuizSampleSize = 6
	}
	if cfg.QuizTimeLimit <= 0 {
		cfg.QuizTimeLimit = 300 * time.Second
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsLocal() {
			return nil, ErrMissingJWTSecret
		}
		logger.L().Warn("JWT_SECRET not set, using local development secret")
		cfg.JWTSecret = localJWTSecret
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
