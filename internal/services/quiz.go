package services

import (
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

// QuizService exposes the read-only side of the persona catalog.
type QuizService interface {
	Questions() (questions []persona.Question, version string)
	Influencers() []persona.Profile
	MinAnswers() int
}

type quizService struct {
	log     *logger.Logger
	catalog *persona.Catalog
}

func NewQuizService(log *logger.Logger, catalog *persona.Catalog) QuizService {
	return &quizService{
		log:     log.With("service", "QuizService"),
		catalog: catalog,
	}
}

func (qs *quizService) Questions() ([]persona.Question, string) {
	out := make([]persona.Question, len(qs.catalog.Questions))
	copy(out, qs.catalog.Questions)
	return out, qs.catalog.Version
}

func (qs *quizService) Influencers() []persona.Profile {
	out := make([]persona.Profile, len(qs.catalog.Personas))
	copy(out, qs.catalog.Personas)
	return out
}

func (qs *quizService) MinAnswers() int {
	return qs.catalog.MinAnswers
}
