package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/viralscript-backend/internal/data/repos/submission"
	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

// StoredResult is a persisted run joined with the submission it came from.
type StoredResult struct {
	Result         *types.ScriptResult `json:"result"`
	User           *types.User         `json:"user,omitempty"`
	Quiz           *types.QuizResult   `json:"quiz,omitempty"`
	CompanySummary []string            `json:"company_summary"`
	Persona        *persona.Profile    `json:"persona,omitempty"`
}

// ResultService reads back persisted pipeline results.
type ResultService interface {
	Get(ctx context.Context, id uuid.UUID) (*StoredResult, error)
}

type ResultRepos struct {
	Results     submission.ScriptResultRepo
	Users       submission.UserRepo
	QuizResults submission.QuizResultRepo
	CompanyData submission.CompanyDataRepo
}

type resultService struct {
	log     *logger.Logger
	repos   ResultRepos
	catalog *persona.Catalog
}

// NewResultService needs repos.Results; the other repos and catalog are
// optional and only enrich the response.
func NewResultService(log *logger.Logger, repos ResultRepos, catalog *persona.Catalog) ResultService {
	return &resultService{
		log:     log.With("service", "ResultService"),
		repos:   repos,
		catalog: catalog,
	}
}

func (rs *resultService) Get(ctx context.Context, id uuid.UUID) (*StoredResult, error) {
	if id == uuid.Nil {
		return nil, &pkgerrors.ValidationError{Field: "id", Reason: "is required"}
	}
	dbc := dbctx.Context{Ctx: ctx}
	row, err := rs.repos.Results.GetFull(dbc, id)
	if err != nil {
		rs.log.Error("Failed to load result", "id", id.String(), "error", err)
		return nil, fmt.Errorf("load result %s: %w", id, err)
	}
	if row == nil {
		return nil, fmt.Errorf("result %s: %w", id, pkgerrors.ErrNotFound)
	}

	out := &StoredResult{Result: row, CompanySummary: []string{}}
	if rs.catalog != nil {
		if p, ok := rs.catalog.Lookup(row.Influencer); ok {
			out.Persona = &p
		}
	}
	if rs.repos.Users != nil {
		if out.User, err = rs.repos.Users.GetByID(dbc, row.UserID); err != nil {
			return nil, fmt.Errorf("load user %s: %w", row.UserID, err)
		}
	}
	if rs.repos.QuizResults != nil {
		quiz, err := rs.repos.QuizResults.ListByUser(dbc, row.UserID)
		if err != nil {
			return nil, fmt.Errorf("load quiz results %s: %w", row.UserID, err)
		}
		if len(quiz) > 0 {
			out.Quiz = quiz[len(quiz)-1]
		}
	}
	if rs.repos.CompanyData != nil {
		cd, err := rs.repos.CompanyData.GetLatestByUser(dbc, row.UserID)
		if err != nil {
			return nil, fmt.Errorf("load company data %s: %w", row.UserID, err)
		}
		if cd != nil && len(cd.Summary) > 0 {
			if err := json.Unmarshal(cd.Summary, &out.CompanySummary); err != nil {
				rs.log.Warn("Stored summary is not a string list", "id", id.String(), "error", err)
			}
			if out.CompanySummary == nil {
				out.CompanySummary = []string{}
			}
		}
	}
	return out, nil
}
