package submission

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type QuizResultRepo interface {
	Create(dbc dbctx.Context, row *types.QuizResult) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.QuizResult, error)
}

type quizResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return &quizResultRepo{db: db, log: baseLog.With("repo", "QuizResultRepo")}
}

func (r *quizResultRepo) Create(dbc dbctx.Context, row *types.QuizResult) error {
	if row == nil {
		return nil
	}
	return dbc.DB(r.db).Create(row).Error
}

func (r *quizResultRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.QuizResult, error) {
	var out []*types.QuizResult
	if userID == uuid.Nil {
		return out, nil
	}
	err := dbc.DB(r.db).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error
	return out, err
}
