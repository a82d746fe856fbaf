package submission

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type ScriptResultRepo interface {
	Create(dbc dbctx.Context, row *types.ScriptResult) error
	// GetFull loads a result with its ideas (by position) and their scripts.
	GetFull(dbc dbctx.Context, id uuid.UUID) (*types.ScriptResult, error)
}

type scriptResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScriptResultRepo(db *gorm.DB, baseLog *logger.Logger) ScriptResultRepo {
	return &scriptResultRepo{db: db, log: baseLog.With("repo", "ScriptResultRepo")}
}

func (r *scriptResultRepo) Create(dbc dbctx.Context, row *types.ScriptResult) error {
	if row == nil {
		return nil
	}
	return dbc.DB(r.db).Omit(clause.Associations).Create(row).Error
}

func (r *scriptResultRepo) GetFull(dbc dbctx.Context, id uuid.UUID) (*types.ScriptResult, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.ScriptResult
	err := dbc.DB(r.db).
		Preload("Ideas", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Ideas.Script").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
