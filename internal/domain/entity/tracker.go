package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tracker records one attempt by one identity at one quiz. The identity is an
// opaque reference to the quiz-taker, not to an API user. Re-attempts are
// independent Tracker rows; nothing limits attempts per identity+quiz pair.
//
// Complete and CompletedAt are set independently by the caller. The store does
// not enforce that one implies the other.
type Tracker struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Identity    uuid.UUID  `gorm:"type:uuid;not null;index" json:"identity"`
	QuizID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz"`
	Complete    bool       `gorm:"not null;default:false;index" json:"complete"`
	Metadata    JSONMap    `gorm:"type:jsonb" json:"metadata"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
}

// TableName sets the table name for GORM.
func (Tracker) TableName() string {
	return "trackers"
}

// BeforeCreate assigns a random identifier when one was not supplied.
func (t *Tracker) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
