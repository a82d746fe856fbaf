package submission

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type CompanyDataRepo interface {
	Create(dbc dbctx.Context, row *types.CompanyData) error
	GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.CompanyData, error)
}

type companyDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanyDataRepo(db *gorm.DB, baseLog *logger.Logger) CompanyDataRepo {
	return &companyDataRepo{db: db, log: baseLog.With("repo", "CompanyDataRepo")}
}

func (r *companyDataRepo) Create(dbc dbctx.Context, row *types.CompanyData) error {
	if row == nil {
		return nil
	}
	return dbc.DB(r.db).Create(row).Error
}

func (r *companyDataRepo) GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.CompanyData, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.CompanyData
	err := dbc.DB(r.db).Where("user_id = ?", userID).Order("created_at DESC").First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
