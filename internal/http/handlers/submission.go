package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/viralscript-backend/internal/http/response"
	"github.com/yungbote/viralscript-backend/internal/modules/ideas"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
	"github.com/yungbote/viralscript-backend/internal/services"
)

type SubmissionHandler struct {
	log         *logger.Logger
	submissions services.SubmissionService
}

func NewSubmissionHandler(log *logger.Logger, submissions services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		log:         log.With("handler", "SubmissionHandler"),
		submissions: submissions,
	}
}

type prefetchRequest struct {
	CompanyName string `json:"company_name"`
	WebsiteURL  string `json:"website_url"`
}

// POST /api/prefetch
// body: { "company_name": "...", "website_url": "..." }
func (sh *SubmissionHandler) Prefetch(c *gin.Context) {
	var req prefetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	key, started, err := sh.submissions.Prefetch(c.Request.Context(), req.CompanyName, req.WebsiteURL)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondAccepted(c, gin.H{"key": key, "started": started})
}

type ideaResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Concept     string `json:"concept"`
	Appeal      string `json:"appeal"`
}

type submitResponse struct {
	Influencer            string             `json:"influencer"`
	InfluencerStyle       string             `json:"influencer_style"`
	InfluencerDescription string             `json:"influencer_description"`
	Industry              string             `json:"industry"`
	CompanySummary        []string           `json:"company_summary"`
	Ideas                 []ideaResponse     `json:"ideas"`
	Scripts               []ideas.Script     `json:"scripts"`
	Timing                map[string]float64 `json:"timing"`
	ResultID              string             `json:"result_id,omitempty"`
}

// POST /api/submit-quiz
// body: { "user_info": { "name", "company_name", "website_url", "role" }, "answers": [{ "question_id", "answer" }] }
func (sh *SubmissionHandler) SubmitQuiz(c *gin.Context) {
	var req services.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := sh.submissions.Submit(c.Request.Context(), req)
	if err != nil {
		sh.log.Warn("Submission failed", "company", req.User.CompanyName, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toSubmitResponse(res))
}

func toSubmitResponse(res *services.Result) submitResponse {
	out := submitResponse{
		Influencer:            res.PersonaName,
		InfluencerStyle:       res.Persona.Style,
		InfluencerDescription: res.Persona.Description,
		Industry:              res.Industry,
		CompanySummary:        res.CompanySummary,
		Ideas:                 make([]ideaResponse, 0, len(res.Ideas)),
		Scripts:               res.Scripts,
		Timing:                res.Timing,
	}
	if res.Saved != nil {
		out.ResultID = res.Saved.ScriptResultID.String()
	}
	if out.CompanySummary == nil {
		out.CompanySummary = []string{}
	}
	if out.Scripts == nil {
		out.Scripts = []ideas.Script{}
	}
	for _, idea := range res.Ideas {
		out.Ideas = append(out.Ideas, ideaResponse{
			Title:       idea.Title,
			Description: idea.Concept,
			Concept:     idea.Concept,
			Appeal:      idea.Appeal,
		})
	}
	return out
}
