package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriggerTableTargets(t *testing.T) {
	table := NewTriggerTable()

	cases := []struct {
		kind   Kind
		action Action
		want   string
	}{
		{KindOrder, ActionProcess, "PROCESSING"},
		{KindOrder, ActionCancel, "CANCELLED"},
		{KindOrder, ActionDone, "DONE"},
		{KindUser, ActionApprove, "APPROVED"},
		{KindUser, ActionReject, "REJECTED"},
		{KindProject, ActionApprove, "APPROVED"},
		{KindProject, ActionReject, "REJECTED"},
	}

	for _, tc := range cases {
		got, ok := table.Target(tc.kind, tc.action)
		assert.True(t, ok, "%s.%s", tc.kind, tc.action)
		assert.Equal(t, tc.want, got, "%s.%s", tc.kind, tc.action)
	}
}

func TestTriggerTableUnknownTrigger(t *testing.T) {
	table := NewTriggerTable()

	_, ok := table.Target(KindOrder, ActionApprove)
	assert.False(t, ok)

	_, ok = table.Target(KindQuestion, ActionAnswer)
	assert.True(t, ok)
}
