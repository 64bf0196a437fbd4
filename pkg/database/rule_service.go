package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRuleManagerNotInitialized = errors.New("rule data manager not initialized")
	ErrRuleNotFound              = errors.New("keyword not found")
	ErrDuplicateRule             = errors.New("keyword already exists in this category")
	ErrInvalidCategory           = errors.New("invalid rule category")
	ErrEmptyKeyword              = errors.New("keyword must not be empty")
)

// RuleListOptions filters and paginates rule listings
type RuleListOptions struct {
	Category models.RuleCategory
	Search   string
	Page     int
	PerPage  int
}

// RuleList is one page of rule entries
type RuleList struct {
	Entries []models.RuleEntry `json:"entries"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}

// getRuleCollection returns the filter_keywords collection via the
// global DataManager
func getRuleCollection() (*mongo.Collection, error) {
	if GlobalRuleDM == nil || GlobalRuleDM.collection == nil {
		return nil, ErrRuleManagerNotInitialized
	}
	return GlobalRuleDM.collection, nil
}

// AddRule inserts a new filter keyword. The keyword is normalized to
// lowercase; a duplicate (keyword, category) pair is rejected, not merged.
func AddRule(ctx context.Context, keyword string, category models.RuleCategory, context_, createdBy string, severity models.RuleSeverity, isActive bool) (*models.RuleEntry, error) {
	col, err := getRuleCollection()
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if severity == "" {
		severity = models.SeverityMedium
	}

	// Uniqueness check before insert; no partial write on rejection
	count, err := col.CountDocuments(ctx, bson.M{"keyword": keyword, "category": category})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRule
	}

	entry := models.RuleEntry{
		ID:        uuid.New().String(),
		Keyword:   keyword,
		Category:  category,
		Context:   context_,
		Severity:  severity,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
		CreatedBy: createdBy,
	}

	if _, err := col.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetRule fetches one rule by id
func GetRule(ctx context.Context, id string) (*models.RuleEntry, error) {
	if GlobalRuleDM == nil {
		return nil, ErrRuleManagerNotInitialized
	}

	entry, err := GlobalRuleDM.Get(bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrRuleNotFound
	}
	return entry, nil
}

// UpdateRule edits an existing rule. The (keyword, category) pair must
// stay unique across the collection.
func UpdateRule(ctx context.Context, id, keyword string, category models.RuleCategory, context_ string, severity models.RuleSeverity, isActive bool) (*models.RuleEntry, error) {
	col, err := getRuleCollection()
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	if _, err := GetRule(ctx, id); err != nil {
		return nil, err
	}

	count, err := col.CountDocuments(ctx, bson.M{
		"keyword":  keyword,
		"category": category,
		"_id":      bson.M{"$ne": id},
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRule
	}

	update := bson.M{
		"keyword":   keyword,
		"category":  category,
		"context":   context_,
		"severity":  severity,
		"is_active": isActive,
	}

	return GlobalRuleDM.Set(bson.M{"_id": id}, update)
}

// ToggleRule flips a rule's active flag and returns the new state
func ToggleRule(ctx context.Context, id string) (*models.RuleEntry, error) {
	entry, err := GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	return GlobalRuleDM.Set(bson.M{"_id": id}, bson.M{"is_active": !entry.IsActive})
}

// DeleteRule removes a rule permanently
func DeleteRule(ctx context.Context, id string) error {
	if GlobalRuleDM == nil {
		return ErrRuleManagerNotInitialized
	}

	if _, err := GetRule(ctx, id); err != nil {
		return err
	}
	return GlobalRuleDM.Delete(bson.M{"_id": id})
}

// ListRules returns one page of rules, newest first, optionally
// filtered by category and keyword substring
func ListRules(ctx context.Context, opts RuleListOptions) (*RuleList, error) {
	col, err := getRuleCollection()
	if err != nil {
		return nil, err
	}

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = 20
	}

	query := bson.M{}
	if opts.Category != "" {
		query["category"] = opts.Category
	}
	if opts.Search != "" {
		query["keyword"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.PerPage)).
		SetLimit(int64(opts.PerPage))

	cursor, err := col.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	entries := make([]models.RuleEntry, 0)
	for cursor.Next(ctx) {
		var entry models.RuleEntry
		if err := cursor.Decode(&entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return &RuleList{
		Entries: entries,
		Total:   total,
		Page:    opts.Page,
		PerPage: opts.PerPage,
	}, cursor.Err()
}

// ActiveRulesByCategory returns all active rule entries grouped by
// category, for the read API
func ActiveRulesByCategory(ctx context.Context) (map[models.RuleCategory][]models.RuleEntry, error) {
	if GlobalRuleDM == nil {
		return nil, ErrRuleManagerNotInitialized
	}

	entries, err := GlobalRuleDM.GetAll(bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	grouped := make(map[models.RuleCategory][]models.RuleEntry)
	for _, category := range models.Categories {
		grouped[category] = []models.RuleEntry{}
	}
	for _, entry := range entries {
		if _, known := grouped[entry.Category]; known {
			grouped[entry.Category] = append(grouped[entry.Category], *entry)
		}
	}
	return grouped, nil
}

// RuleSource adapts the rule collection to the moderation snapshot
// refresher: active keywords grouped by category.
type RuleSource struct{}

// ActiveByCategory implements moderation.RuleSource
func (RuleSource) ActiveByCategory(ctx context.Context) (map[models.RuleCategory][]string, error) {
	grouped, err := ActiveRulesByCategory(ctx)
	if err != nil {
		return nil, err
	}

	terms := make(map[models.RuleCategory][]string, len(grouped))
	for category, entries := range grouped {
		for _, entry := range entries {
			terms[category] = append(terms[category], entry.Keyword)
		}
	}
	return terms, nil
}
