package moderation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
)

// KeywordEngine classifies message content against the active rule
// snapshot. Classification is a pure function of the content and the
// snapshot in effect at call time.
type KeywordEngine struct {
	rules *SnapshotStore
}

// NewKeywordEngine creates a keyword engine over a snapshot store
func NewKeywordEngine(rules *SnapshotStore) *KeywordEngine {
	return &KeywordEngine{rules: rules}
}

// keywordCheck is one step of the classification sequence. It returns
// a verdict and true when the check fires.
type keywordCheck struct {
	name string
	run  func(content, lower string, snap *RuleSnapshot) (models.Verdict, bool)
}

// keywordChecks is evaluated in order, first match wins. The ordering
// is deliberate: categories overlap, and an all-caps message containing
// a profane term is reported as profanity, not shouting.
var keywordChecks = []keywordCheck{
	{name: "profanity", run: checkProfanity},
	{name: "harassment", run: checkHarassment},
	{name: "offensive", run: checkOffensive},
	{name: "shouting", run: checkShouting},
}

// Classify runs the ordered keyword checks over the message content
func (e *KeywordEngine) Classify(content string) models.Verdict {
	if strings.TrimSpace(content) == "" {
		return models.Clean()
	}

	snap := e.rules.Current()
	lower := strings.ToLower(content)

	for _, check := range keywordChecks {
		if verdict, ok := check.run(content, lower, snap); ok {
			return verdict
		}
	}

	return models.Clean()
}

// checkProfanity fires on the first profane term found anywhere in the message
func checkProfanity(_, lower string, snap *RuleSnapshot) (models.Verdict, bool) {
	for _, term := range snap.Terms(models.CategoryProfanity) {
		if strings.Contains(lower, term) {
			return models.Verdict{
				IsViolation:   true,
				ViolationType: models.ViolationProfanity,
				Confidence:    0.9,
				Reason:        "Chứa từ ngữ thô tục: " + term,
			}, true
		}
	}
	return models.Verdict{}, false
}

// checkHarassment requires at least two distinct indicator terms. A
// single match is not enough: words like "cute" or "baby" are common
// in innocuous messages.
func checkHarassment(_, lower string, snap *RuleSnapshot) (models.Verdict, bool) {
	var found []string
	for _, term := range snap.Terms(models.CategoryHarassment) {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}

	if len(found) >= 2 {
		return models.Verdict{
			IsViolation:   true,
			ViolationType: models.ViolationHarassment,
			Confidence:    0.8,
			Reason:        "Chứa nội dung gạ gẫm: " + strings.Join(found, ", "),
		}, true
	}
	return models.Verdict{}, false
}

// checkOffensive fires on the first offensive term found
func checkOffensive(_, lower string, snap *RuleSnapshot) (models.Verdict, bool) {
	for _, term := range snap.Terms(models.CategoryOffensive) {
		if strings.Contains(lower, term) {
			return models.Verdict{
				IsViolation:   true,
				ViolationType: models.ViolationOffensive,
				Confidence:    0.8,
				Reason:        "Chứa nội dung xúc phạm: " + term,
			}, true
		}
	}
	return models.Verdict{}, false
}

// checkShouting fires on messages longer than 10 characters written
// entirely in upper case
func checkShouting(content, _ string, _ *RuleSnapshot) (models.Verdict, bool) {
	if utf8.RuneCountInString(content) > 10 && isShouting(content) {
		return models.Verdict{
			IsViolation:   true,
			ViolationType: models.ViolationSpamShouting,
			Confidence:    0.6,
			Reason:        "Tin nhắn viết hoa toàn bộ (shouting)",
		}, true
	}
	return models.Verdict{}, false
}

// isShouting reports whether every cased character is upper case and at
// least one cased character exists
func isShouting(content string) bool {
	hasCased := false
	for _, r := range content {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
