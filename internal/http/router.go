package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/viralscript-backend/internal/http/handlers"
	httpMW "github.com/yungbote/viralscript-backend/internal/http/middleware"
	"github.com/yungbote/viralscript-backend/internal/observability"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	HealthHandler     *httpH.HealthHandler
	QuizHandler       *httpH.QuizHandler
	SubmissionHandler *httpH.SubmissionHandler
	ResultHandler     *httpH.ResultHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "viralscript"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Quiz catalog
		if cfg.QuizHandler != nil {
			api.GET("/quiz-questions", cfg.QuizHandler.GetQuestions)
			api.GET("/influencers", cfg.QuizHandler.GetInfluencers)
		}

		// Pipeline
		if cfg.SubmissionHandler != nil {
			api.POST("/prefetch", cfg.SubmissionHandler.Prefetch)
			api.POST("/submit-quiz", cfg.SubmissionHandler.SubmitQuiz)
		}

		// Stored results
		if cfg.ResultHandler != nil {
			api.GET("/results/:id", cfg.ResultHandler.GetResult)
		}
	}

	return r
}
