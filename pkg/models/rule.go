package models

import "time"

// RuleCategory is the category a filter keyword belongs to
type RuleCategory string

const (
	CategoryProfanity  RuleCategory = "PROFANITY"
	CategoryHarassment RuleCategory = "HARASSMENT"
	CategoryOffensive  RuleCategory = "OFFENSIVE"
	CategorySpam       RuleCategory = "SPAM"
)

// Categories lists the valid rule categories in display order
var Categories = []RuleCategory{
	CategoryProfanity,
	CategoryHarassment,
	CategoryOffensive,
	CategorySpam,
}

// Valid reports whether the category is one of the known categories
func (c RuleCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// RuleSeverity is the operator-assigned weight of a keyword
type RuleSeverity string

const (
	SeverityLow    RuleSeverity = "low"
	SeverityMedium RuleSeverity = "medium"
	SeverityHigh   RuleSeverity = "high"
)

// RuleEntry is an operator-managed filter keyword stored in the
// "filter_keywords" collection. Keywords are normalized to lowercase on
// write and (keyword, category) pairs are unique.
type RuleEntry struct {
	ID        string       `bson:"_id" json:"id"`
	Keyword   string       `bson:"keyword" json:"keyword"`
	Category  RuleCategory `bson:"category" json:"category"`
	Context   string       `bson:"context,omitempty" json:"context,omitempty"`
	Severity  RuleSeverity `bson:"severity" json:"severity"`
	IsActive  bool         `bson:"is_active" json:"is_active"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	CreatedBy string       `bson:"created_by" json:"created_by"`
}
