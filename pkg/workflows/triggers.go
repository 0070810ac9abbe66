package workflows

import "fmt"

// Kind identifies an auditable entity family.
type Kind string

const (
	KindOrder    Kind = "order"
	KindUser     Kind = "user"
	KindProject  Kind = "project"
	KindQuestion Kind = "question"
)

// Action is a mediator trigger applied to an entity.
type Action string

const (
	ActionProcess      Action = "process"
	ActionCancel       Action = "cancel"
	ActionDone         Action = "done"
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionAnswer       Action = "answer"
	ActionDeleteAnswer Action = "delete_answer"
)

// Trigger names one (kind, action) pair.
type Trigger struct {
	Kind   Kind
	Action Action
}

func (t Trigger) String() string {
	return fmt.Sprintf("%s.%s", t.Kind, t.Action)
}

// TriggerTable maps each trigger to the status it sets. Targets are applied
// regardless of the entity's current status; the table is deliberately flat.
// Question triggers carry an empty target because they mutate the answer
// field rather than a status.
type TriggerTable struct {
	targets map[Trigger]string
}

// NewTriggerTable creates the mediator audit trigger table
func NewTriggerTable() *TriggerTable {
	return &TriggerTable{
		targets: map[Trigger]string{
			{KindOrder, ActionProcess}:         "PROCESSING",
			{KindOrder, ActionCancel}:          "CANCELLED",
			{KindOrder, ActionDone}:            "DONE",
			{KindUser, ActionApprove}:          "APPROVED",
			{KindUser, ActionReject}:           "REJECTED",
			{KindProject, ActionApprove}:       "APPROVED",
			{KindProject, ActionReject}:        "REJECTED",
			{KindQuestion, ActionAnswer}:       "",
			{KindQuestion, ActionDeleteAnswer}: "",
		},
	}
}

// Target returns the status a trigger sets and whether the trigger exists.
func (t *TriggerTable) Target(kind Kind, action Action) (string, bool) {
	target, ok := t.targets[Trigger{Kind: kind, Action: action}]
	return target, ok
}
