package submission

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/pkg/pointers"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

// Record is the plain data of one finished pipeline run.
type Record struct {
	Name        string
	CompanyName string
	WebsiteURL  string
	Role        string

	Answers           any
	MatchedInfluencer string
	InfluencerStyle   string
	Industry          string
	Summary           []string

	Ideas []IdeaRecord
}

type IdeaRecord struct {
	Title   string
	Concept string
	Appeal  string
	Script  *ScriptRecord
}

type ScriptRecord struct {
	Content       string
	DeliveryNotes string
	EditingNotes  string
}

type Saved struct {
	UserID         uuid.UUID
	ScriptResultID uuid.UUID
}

// SubmissionStore writes a whole Record or nothing.
type SubmissionStore interface {
	Save(ctx context.Context, rec Record) (*Saved, error)
}

type submissionStore struct {
	db  *gorm.DB
	log *logger.Logger

	users         UserRepo
	quizResults   QuizResultRepo
	companyData   CompanyDataRepo
	scriptResults ScriptResultRepo
	videoIdeas    VideoIdeaRepo
	scripts       ScriptRepo
}

func NewSubmissionStore(db *gorm.DB, baseLog *logger.Logger) SubmissionStore {
	return &submissionStore{
		db:            db,
		log:           baseLog.With("repo", "SubmissionStore"),
		users:         NewUserRepo(db, baseLog),
		quizResults:   NewQuizResultRepo(db, baseLog),
		companyData:   NewCompanyDataRepo(db, baseLog),
		scriptResults: NewScriptResultRepo(db, baseLog),
		videoIdeas:    NewVideoIdeaRepo(db, baseLog),
		scripts:       NewScriptRepo(db, baseLog),
	}
}

func (s *submissionStore) Save(ctx context.Context, rec Record) (*Saved, error) {
	answers, err := toJSON(rec.Answers)
	if err != nil {
		return nil, &pkgerrors.PersistenceError{Op: "encode_answers", Err: err}
	}
	summary, err := toJSON(rec.Summary)
	if err != nil {
		return nil, &pkgerrors.PersistenceError{Op: "encode_summary", Err: err}
	}

	var saved Saved
	op := "begin"
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		user := &types.User{
			Name:        rec.Name,
			CompanyName: rec.CompanyName,
			WebsiteURL:  rec.WebsiteURL,
			Role:        pointers.NonEmpty(rec.Role),
		}
		op = "create_user"
		if err := s.users.Create(dbc, user); err != nil {
			return err
		}

		op = "create_quiz_result"
		if err := s.quizResults.Create(dbc, &types.QuizResult{
			UserID:            user.ID,
			MatchedInfluencer: rec.MatchedInfluencer,
			Answers:           answers,
		}); err != nil {
			return err
		}

		op = "create_company_data"
		if err := s.companyData.Create(dbc, &types.CompanyData{UserID: user.ID, Summary: summary}); err != nil {
			return err
		}

		result := &types.ScriptResult{
			UserID:          user.ID,
			Influencer:      rec.MatchedInfluencer,
			InfluencerStyle: rec.InfluencerStyle,
			Industry:        rec.Industry,
		}
		op = "create_script_result"
		if err := s.scriptResults.Create(dbc, result); err != nil {
			return err
		}

		ideas := make([]*types.VideoIdea, 0, len(rec.Ideas))
		for i, idea := range rec.Ideas {
			ideas = append(ideas, &types.VideoIdea{
				ID:             uuid.New(),
				ScriptResultID: result.ID,
				Position:       i,
				Title:          idea.Title,
				Concept:        idea.Concept,
				Appeal:         idea.Appeal,
			})
		}
		op = "create_video_ideas"
		if err := s.videoIdeas.CreateMany(dbc, ideas); err != nil {
			return err
		}

		var scripts []*types.Script
		for i, idea := range rec.Ideas {
			if idea.Script == nil {
				continue
			}
			scripts = append(scripts, &types.Script{
				VideoIdeaID:   ideas[i].ID,
				Content:       idea.Script.Content,
				DeliveryNotes: idea.Script.DeliveryNotes,
				EditingNotes:  idea.Script.EditingNotes,
			})
		}
		op = "create_scripts"
		if err := s.scripts.CreateMany(dbc, scripts); err != nil {
			return err
		}

		saved = Saved{UserID: user.ID, ScriptResultID: result.ID}
		return nil
	})
	if err != nil {
		s.log.Error("submission not saved", "op", op, "error", err)
		return nil, &pkgerrors.PersistenceError{Op: op, Err: err}
	}
	s.log.Debug("submission saved",
		"user_id", saved.UserID.String(),
		"script_result_id", saved.ScriptResultID.String(),
		"ideas", len(rec.Ideas),
	)
	return &saved, nil
}

func toJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return datatypes.JSON([]byte("null")), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return datatypes.JSON(b), nil
}
