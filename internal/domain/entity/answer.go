package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer is one submitted response to one question within one tracker.
// QuestionText and ResponseSent are snapshots captured at submission time;
// later edits to the Question never change historical answers. AnswerCorrect
// is authoritative for aggregation and is never recomputed.
type Answer struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Version       int        `gorm:"not null;default:1" json:"version"`
	QuestionID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"question"`
	QuestionText  string     `gorm:"size:200;not null;default:''" json:"question_text"`
	ResponseSent  string     `gorm:"size:200;not null;default:''" json:"response_sent"`
	AnswerValue   string     `gorm:"size:200;not null;default:''" json:"answer_value"`
	AnswerText    string     `gorm:"size:200;not null;default:''" json:"answer_text"`
	AnswerCorrect bool       `gorm:"not null;index" json:"answer_correct"`
	TrackerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"tracker"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CreatedByID   *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedByID   *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
}

// TableName sets the table name for GORM.
func (Answer) TableName() string {
	return "answers"
}

// BeforeCreate assigns a random identifier when one was not supplied.
func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
