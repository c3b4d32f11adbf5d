package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question type choices
const (
	QuestionTypeMultipleChoice = "multiplechoice"
	QuestionTypeTrueFalse      = "truefalse"
	QuestionTypeFreeText       = "freetext"
)

// QuestionTypes lists every accepted question_type value.
var QuestionTypes = []string{
	QuestionTypeMultipleChoice,
	QuestionTypeTrueFalse,
	QuestionTypeFreeText,
}

// ValidQuestionType reports whether t is one of the declared question types.
func ValidQuestionType(t string) bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AnswerOption is one selectable option of a question.
type AnswerOption struct {
	Value   string `json:"value"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// AnswerOptions is an ordered option list stored as JSONB. Option order is
// significant and must survive a round-trip through the database.
type AnswerOptions []AnswerOption

// Scan implements sql.Scanner for AnswerOptions.
// Used by GORM to read JSONB data from the database.
func (o *AnswerOptions) Scan(value interface{}) error {
	if value == nil {
		*o = AnswerOptions{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = AnswerOptions{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value implements driver.Valuer for AnswerOptions.
func (o AnswerOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Correct returns the first option flagged correct, or nil when none is.
func (o AnswerOptions) Correct() *AnswerOption {
	for i := range o {
		if o[i].Correct {
			return &o[i]
		}
	}
	return nil
}

// Question is a reusable quiz question. It is a top-level entity: the same
// question may be attached to any number of quizzes.
type Question struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Version           int           `gorm:"not null;default:1" json:"version"`
	QuestionType      string        `gorm:"size:50;not null;index" json:"question_type"`
	Question          string        `gorm:"size:200;not null" json:"question"`
	Answers           AnswerOptions `gorm:"type:jsonb" json:"answers"`
	ResponseCorrect   string        `gorm:"size:200;not null;default:''" json:"response_correct"`
	ResponseIncorrect string        `gorm:"size:200;not null;default:''" json:"response_incorrect"`
	Active            bool          `gorm:"not null;default:false;index" json:"active"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	CreatedByID       *uuid.UUID    `gorm:"type:uuid" json:"created_by"`
	UpdatedByID       *uuid.UUID    `gorm:"type:uuid" json:"updated_by"`
}

// TableName sets the table name for GORM.
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate assigns a random identifier when one was not supplied.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Version == 0 {
		q.Version = 1
	}
	return nil
}
