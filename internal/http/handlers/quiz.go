package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/viralscript-backend/internal/http/response"
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	"github.com/yungbote/viralscript-backend/internal/services"
)

type QuizHandler struct {
	quiz services.QuizService
}

func NewQuizHandler(quiz services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

type questionsResponse struct {
	Questions  []persona.Question `json:"questions"`
	Version    string             `json:"version"`
	MinAnswers int                `json:"min_answers"`
}

// GET /api/quiz-questions
func (qh *QuizHandler) GetQuestions(c *gin.Context) {
	questions, version := qh.quiz.Questions()
	response.RespondOK(c, questionsResponse{
		Questions:  questions,
		Version:    version,
		MinAnswers: qh.quiz.MinAnswers(),
	})
}

// GET /api/influencers
func (qh *QuizHandler) GetInfluencers(c *gin.Context) {
	response.RespondOK(c, gin.H{"influencers": qh.quiz.Influencers()})
}
