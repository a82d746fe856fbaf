package submission

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type VideoIdeaRepo interface {
	CreateMany(dbc dbctx.Context, rows []*types.VideoIdea) error
}

type videoIdeaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoIdeaRepo(db *gorm.DB, baseLog *logger.Logger) VideoIdeaRepo {
	return &videoIdeaRepo{db: db, log: baseLog.With("repo", "VideoIdeaRepo")}
}

func (r *videoIdeaRepo) CreateMany(dbc dbctx.Context, rows []*types.VideoIdea) error {
	if len(rows) == 0 {
		return nil
	}
	return dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error
}
