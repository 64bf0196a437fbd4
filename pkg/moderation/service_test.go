package moderation

import (
	"context"
	"testing"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
)

// TestEvaluateKeywordFallback verifies that without a classifier the
// pipeline is keyword-only
func TestEvaluateKeywordFallback(t *testing.T) {
	service := NewService(newTestEngine(), nil, nil)

	verdict := service.Evaluate(context.Background(), "đồ ngu")
	if !verdict.IsViolation {
		t.Fatal("expected keyword engine to flag the message")
	}
	if verdict.ViolationType != models.ViolationProfanity {
		t.Errorf("ViolationType = %v, want %v", verdict.ViolationType, models.ViolationProfanity)
	}
}

// TestEvaluateEmpty verifies the empty-content short-circuit
func TestEvaluateEmpty(t *testing.T) {
	service := NewService(newTestEngine(), nil, nil)

	for _, content := range []string{"", "   ", "\n\t"} {
		if verdict := service.Evaluate(context.Background(), content); verdict.IsViolation {
			t.Errorf("Evaluate(%q) flagged empty content: %+v", content, verdict)
		}
	}
}

// TestNewClassifierWithoutKey verifies that a missing API key disables
// the classifier instead of constructing a broken one
func TestNewClassifierWithoutKey(t *testing.T) {
	if c := NewClassifier("", "gpt-4o"); c != nil {
		t.Error("NewClassifier with empty key should return nil")
	}
}

// TestSeverity verifies the violation label to severity mapping
func TestSeverity(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{models.ViolationProfanity.Label(), "high"},
		{models.ViolationHarassment.Label(), "critical"},
		{models.ViolationOffensive.Label(), "high"},
		{models.ViolationDiscordInvite.Label(), "medium"},
		{models.ViolationSpamShouting.Label(), "low"},
		{"something unknown", "medium"},
	}

	for _, tc := range cases {
		if got := Severity(tc.label); got != tc.want {
			t.Errorf("Severity(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}
