package audit

// MaxAnswerLength is the longest answer, in characters, a mediator may store.
const MaxAnswerLength = 255

// AnswerRequest binds the body of PATCH /question/:questionId. A null answer
// clears the stored answer.
type AnswerRequest struct {
	QuestionID *int64  `json:"question_id,omitempty"`
	Answer     *string `json:"answer" binding:"omitempty,max=255"`
}

// PendingSummary counts the entities currently awaiting mediator action.
type PendingSummary struct {
	PendingUsers        int64 `json:"pending_users"`
	PendingProjects     int64 `json:"pending_projects"`
	UnansweredQuestions int64 `json:"unanswered_questions"`
}

// Total is the size of all three queues together.
func (s PendingSummary) Total() int64 {
	return s.PendingUsers + s.PendingProjects + s.UnansweredQuestions
}
