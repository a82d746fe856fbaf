package submission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the person behind a quiz submission. There are no accounts; a row
// is written per submission.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	CompanyName string    `gorm:"not null;index;column:company_name" json:"company_name"`
	WebsiteURL  string    `gorm:"not null;column:website_url" json:"website_url"`
	Role        *string   `gorm:"column:role" json:"role,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
