package submission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizResult struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID" json:"-"`
	MatchedInfluencer string         `gorm:"not null;column:matched_influencer" json:"matched_influencer"`
	Answers           datatypes.JSON `gorm:"column:answers" json:"answers"`
	CreatedAt         time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (QuizResult) TableName() string { return "quiz_results" }

func (r *QuizResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CompanyData struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID" json:"-"`
	Summary   datatypes.JSON `gorm:"column:summary" json:"summary"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (CompanyData) TableName() string { return "company_data" }

func (d *CompanyData) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type ScriptResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID" json:"-"`
	Influencer      string    `gorm:"not null;column:influencer" json:"influencer"`
	InfluencerStyle string    `gorm:"column:influencer_style" json:"influencer_style"`
	Industry        string    `gorm:"column:industry" json:"industry"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Ideas []VideoIdea `gorm:"foreignKey:ScriptResultID" json:"ideas,omitempty"`
}

func (ScriptResult) TableName() string { return "script_results" }

func (r *ScriptResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type VideoIdea struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ScriptResultID uuid.UUID `gorm:"type:uuid;not null;index;column:script_result_id" json:"script_result_id"`
	Position       int       `gorm:"not null;column:position" json:"position"`
	Title          string    `gorm:"not null;column:title" json:"title"`
	Concept        string    `gorm:"column:concept" json:"concept"`
	Appeal         string    `gorm:"column:appeal" json:"appeal"`

	Script *Script `gorm:"foreignKey:VideoIdeaID" json:"script,omitempty"`
}

func (VideoIdea) TableName() string { return "video_ideas" }

func (i *VideoIdea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Script struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoIdeaID   uuid.UUID `gorm:"type:uuid;not null;index;column:video_idea_id" json:"video_idea_id"`
	Content       string    `gorm:"not null;column:content" json:"content"`
	DeliveryNotes string    `gorm:"column:delivery_notes" json:"delivery_notes"`
	EditingNotes  string    `gorm:"column:editing_notes" json:"editing_notes"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Script) TableName() string { return "scripts" }

func (s *Script) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
