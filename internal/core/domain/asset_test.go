package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportDecision_Changed(t *testing.T) {
	tests := []struct {
		outcome Outcome
		changed bool
	}{
		{OutcomeUnchanged, false},
		{OutcomeCreated, true},
		{OutcomeUpdated, true},
		{OutcomeDeleted, true},
		// Unknown outcomes are treated conservatively as changes.
		{Outcome("migrated"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			d := ImportDecision{AssetHref: "/assets/1", Outcome: tt.outcome}
			assert.Equal(t, tt.changed, d.Changed())
		})
	}
}
