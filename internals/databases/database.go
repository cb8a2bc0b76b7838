package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quizku_backend/internals/configs"
	questionModel "quizku_backend/internals/features/quiz/questions/model"
	resultModel "quizku_backend/internals/features/quiz/results/model"
	authModel "quizku_backend/internals/features/users/auth/model"
	userModel "quizku_backend/internals/features/users/user/model"
	"quizku_backend/internals/logger"
)

var DB *gorm.DB

var ErrUnknownDriver = errors.New("unknown DB_DRIVER")

// PostgresDSN builds the DSN from the DB_* parts unless DATABASE_URL is set.
func PostgresDSN(c configs.DBConfig) string {
	if c.URL != "" {
		return c.URL
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "require"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=quizku&options=-c statement_timeout=3000",
		c.User, c.Password, c.Host, c.Port, c.Name, sslmode,
	)
}

// Open connects with the configured driver. sqlite is for local runs and tests.
func Open(c configs.DBConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	}

	switch c.Driver {
	case "", "postgres":
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  PostgresDSN(c),
			PreferSimpleProtocol: true, // PgBouncer transaction pooling
		}), gcfg)
	case "sqlite":
		path := c.SQLitePath
		if path == "" {
			path = "quizku.db"
		}
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, err
				}
			}
		}
		return gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), gcfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

func ConnectDB(c configs.DBConfig) error {
	logger.L().WithField("driver", c.Driver).Info("connecting to database")
	db, err := Open(c)
	if err != nil {
		return err
	}
	DB = db
	logger.L().Info("database connected")
	return nil
}

func TunePool(db *gorm.DB, driver string) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.L().WithError(err).Warn("pool tune failed")
		return
	}
	if driver == "sqlite" {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			logger.L().WithError(err).Warn("warm-up ping failed")
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&questionModel.QuestionModel{},
		&resultModel.QuizResultModel{},
		&authModel.TokenBlacklist{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
