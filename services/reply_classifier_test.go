package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected Intent
	}{
		{"uppercase yes", "YES", IntentConfirm},
		{"lowercase yes", "yes", IntentConfirm},
		{"bare y", "y", IntentConfirm},
		{"ok", "ok", IntentConfirm},
		{"okay with noise", "okay thanks!", IntentConfirm},
		{"arabic yes", "نعم", IntentConfirm},
		{"arabic confirm", "تأكيد", IntentConfirm},
		{"no", "NO", IntentCancel},
		{"bare n", "n", IntentCancel},
		{"cancel", "please cancel", IntentCancel},
		{"arabic no", "لا", IntentCancel},
		{"arabic cancel", "الغاء", IntentCancel},
		{"unclear", "maybe", IntentUnknown},
		{"question", "what is this?", IntentUnknown},
		{"empty", "", IntentUnknown},
		{"whitespace only", "   ", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyReply(tt.body))
		})
	}
}

func TestClassifyReplyAffirmativePrecedence(t *testing.T) {
	// The affirmative vocabulary is checked first, so a message containing
	// both reads as a confirmation.
	assert.Equal(t, IntentConfirm, ClassifyReply("yes but no"))
	assert.Equal(t, IntentConfirm, ClassifyReply("no... ok fine yes"))
}
