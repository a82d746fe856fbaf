package submission

import (
	"gorm.io/gorm"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type ScriptRepo interface {
	CreateMany(dbc dbctx.Context, rows []*types.Script) error
}

type scriptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScriptRepo(db *gorm.DB, baseLog *logger.Logger) ScriptRepo {
	return &scriptRepo{db: db, log: baseLog.With("repo", "ScriptRepo")}
}

func (r *scriptRepo) CreateMany(dbc dbctx.Context, rows []*types.Script) error {
	if len(rows) == 0 {
		return nil
	}
	return dbc.DB(r.db).Create(&rows).Error
}
