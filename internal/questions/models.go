package questions

import "time"

// Question is a marketplace participant's question to the mediators.
// It is pending while Answer is nil.
type Question struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    *string   `gorm:"type:varchar(255)" json:"answer"`
	AskedBy   *int64    `gorm:"index" json:"asked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Answered reports whether a mediator has answered the question.
func (q *Question) Answered() bool {
	return q.Answer != nil
}
