package moderation

import (
	"context"
	"strings"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
)

// Service is the moderation pipeline: AI classifier first when
// configured and enabled, keyword engine as the fallback.
type Service struct {
	classifier *Classifier
	keywords   *KeywordEngine
	aiEnabled  func() bool
}

// NewService creates the pipeline. classifier may be nil (no API key);
// aiEnabled gates the classifier at runtime via the operator settings
// and may be nil, meaning always enabled.
func NewService(keywords *KeywordEngine, classifier *Classifier, aiEnabled func() bool) *Service {
	return &Service{
		classifier: classifier,
		keywords:   keywords,
		aiEnabled:  aiEnabled,
	}
}

// Evaluate produces the final verdict for one message. An AI violation
// verdict short-circuits the keyword checks; an AI failure or clean
// verdict falls through to them.
func (s *Service) Evaluate(ctx context.Context, content string) models.Verdict {
	if strings.TrimSpace(content) == "" {
		return models.Clean()
	}

	if s.classifierActive() {
		verdict, err := s.classifier.Classify(ctx, content)
		if err != nil {
			logger.Warn("AI moderation failed, falling back to keyword filtering: "+err.Error(), "Moderation")
		} else if verdict.IsViolation {
			return verdict
		}
	}

	return s.keywords.Classify(content)
}

// classifierActive reports whether the AI classifier should be consulted
func (s *Service) classifierActive() bool {
	if s.classifier == nil {
		return false
	}
	if s.aiEnabled != nil && !s.aiEnabled() {
		return false
	}
	return true
}

// Severity maps a violation label to its enforcement weight
func Severity(violationType string) string {
	switch violationType {
	case models.ViolationProfanity.Label():
		return "high"
	case models.ViolationHarassment.Label():
		return "critical"
	case models.ViolationOffensive.Label():
		return "high"
	case models.ViolationDiscordInvite.Label():
		return "medium"
	case models.ViolationSpamShouting.Label():
		return "low"
	default:
		return "medium"
	}
}
