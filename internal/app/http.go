package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/viralscript-backend/internal/http"
	httpH "github.com/yungbote/viralscript-backend/internal/http/handlers"
	"github.com/yungbote/viralscript-backend/internal/observability"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Quiz       *httpH.QuizHandler
	Submission *httpH.SubmissionHandler
	Result     *httpH.ResultHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	h := Handlers{
		Health:     httpH.NewHealthHandler(dbPinger(db)),
		Quiz:       httpH.NewQuizHandler(services.Quiz),
		Submission: httpH.NewSubmissionHandler(log, services.Submission),
	}
	if services.Result != nil {
		h.Result = httpH.NewResultHandler(services.Result)
	}
	return h
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.Health,
		QuizHandler:       handlers.Quiz,
		SubmissionHandler: handlers.Submission,
		ResultHandler:     handlers.Result,
	})
}

func dbPinger(db *gorm.DB) func(ctx context.Context) error {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
