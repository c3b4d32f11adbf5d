package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONMap is an opaque JSONB object. The service attaches no meaning to its
// contents; clients round-trip whatever structure they stored.
type JSONMap map[string]interface{}

// Scan implements sql.Scanner for JSONMap.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer for JSONMap.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Quiz is a named collection of questions. It does not own its questions:
// the relation is many-to-many through quiz_questions.
type Quiz struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Description string     `gorm:"size:200;not null;default:''" json:"description"`
	Active      bool       `gorm:"not null;default:false;index" json:"active"`
	Archived    bool       `gorm:"not null;default:false" json:"archived"`
	Metadata    JSONMap    `gorm:"type:jsonb" json:"metadata"`
	Questions   []Question `gorm:"many2many:quiz_questions" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
}

// TableName sets the table name for GORM.
func (Quiz) TableName() string {
	return "quizzes"
}

// BeforeCreate assigns a random identifier when one was not supplied.
func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuestionIDs returns the identifiers of the attached questions in order.
func (q *Quiz) QuestionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(q.Questions))
	for i, question := range q.Questions {
		ids[i] = question.ID
	}
	return ids
}
