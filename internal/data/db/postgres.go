package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/viralscript-backend/internal/platform/envutil"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

// ErrDisabled is returned by Open when DB_DRIVER=none.
var ErrDisabled = errors.New("database disabled")

type Config struct {
	Driver     string
	DSN        string
	SQLitePath string
}

func ConfigFromEnv(logg *logger.Logger) Config {
	cfg := Config{
		Driver:     strings.ToLower(envutil.String("DB_DRIVER", "sqlite", logg)),
		DSN:        envutil.String("POSTGRES_DSN", "", nil),
		SQLitePath: envutil.String("SQLITE_PATH", "viralscript.db", logg),
	}
	if cfg.Driver == "postgres" && cfg.DSN == "" {
		cfg.DSN = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			envutil.String("POSTGRES_USER", "postgres", logg),
			envutil.String("POSTGRES_PASSWORD", "", nil),
			envutil.String("POSTGRES_HOST", "localhost", logg),
			envutil.String("POSTGRES_PORT", "5432", logg),
			envutil.String("POSTGRES_NAME", "viralscript", logg),
		)
	}
	return cfg
}

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the configured driver. Postgres is the production store;
// sqlite serves local runs and tests.
func Open(logg *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := logg.With("service", "DatabaseService", "driver", cfg.Driver)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gcfg := &gorm.Config{Logger: gormLog}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "none", "off", "disabled":
		return nil, ErrDisabled
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		path := cfg.SQLitePath
		if path == "" {
			path = "viralscript.db"
		}
		dialector = sqlite.Open(sqliteDSN(path))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}
	serviceLog.Info("database connected")
	return &Service{db: db, log: serviceLog}, nil
}

// sqliteDSN turns on foreign keys for every pooled connection.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
