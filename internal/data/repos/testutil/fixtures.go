package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/yungbote/viralscript-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, companyName string) *types.User {
	tb.Helper()
	u := &types.User{
		Name:        "Jane",
		CompanyName: companyName,
		WebsiteURL:  "https://example.com",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}
