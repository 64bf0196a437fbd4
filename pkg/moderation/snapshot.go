// Package moderation implements the message classification pipeline:
// an optional OpenAI classifier, a keyword engine over the operator rule
// set, and the invite-link and spam heuristics.
package moderation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
)

// Built-in Vietnamese base lists. Operator keywords from the rule store
// are merged on top of these at snapshot build time.
var (
	baseProfanity = []string{
		"đụ", "địt", "lồn", "cặc", "đéo", "vãi", "chó", "khốn",
		"súc vật", "thằng khốn", "con chó", "đồ khốn", "mẹ kiếp",
		"đồ ngu", "ngu si", "đần độn", "óc chó", "não cá vàng",
	}

	baseHarassment = []string{
		"gạ", "quen", "làm quen", "kết bạn", "hẹn hò", "yêu đương",
		"gặp mặt", "ra ngoài", "đi chơi", "sexy", "xinh đẹp",
		"dễ thương", "cute", "baby", "tình yêu", "crush",
	}

	baseOffensive = []string{
		"chết đi", "chết tiệt", "đi chết", "mày", "tao", "bố mày",
		"mẹ mày", "gia đình mày", "đồ rác", "thằng rác", "con rác",
		"thần kinh", "bệnh hoạn", "điên", "khùng",
	}
)

// RuleSnapshot is an immutable view of the active term lists. Readers
// never observe a half-updated list: a new snapshot is built off to the
// side and swapped in atomically.
type RuleSnapshot struct {
	terms map[models.RuleCategory][]string
}

// NewRuleSnapshot builds a snapshot from the built-in base lists merged
// with the given operator terms. Terms are lowercased and deduplicated.
func NewRuleSnapshot(operator map[models.RuleCategory][]string) *RuleSnapshot {
	merged := map[models.RuleCategory][]string{
		models.CategoryProfanity:  append([]string{}, baseProfanity...),
		models.CategoryHarassment: append([]string{}, baseHarassment...),
		models.CategoryOffensive:  append([]string{}, baseOffensive...),
		models.CategorySpam:       {},
	}

	for category, terms := range operator {
		merged[category] = append(merged[category], terms...)
	}

	for category, terms := range merged {
		seen := make(map[string]bool, len(terms))
		unique := make([]string, 0, len(terms))
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			unique = append(unique, term)
		}
		merged[category] = unique
	}

	return &RuleSnapshot{terms: merged}
}

// Terms returns the active terms for a category
func (s *RuleSnapshot) Terms(category models.RuleCategory) []string {
	return s.terms[category]
}

// RuleSource provides the operator-managed active terms, grouped by category
type RuleSource interface {
	ActiveByCategory(ctx context.Context) (map[models.RuleCategory][]string, error)
}

// SnapshotStore holds the current rule snapshot and refreshes it from a
// RuleSource. Message evaluation reads the snapshot lock-free.
type SnapshotStore struct {
	current     atomic.Pointer[RuleSnapshot]
	source      RuleSource
	stopRefresh chan struct{}
	refreshing  bool
	mu          sync.Mutex
}

// NewSnapshotStore creates a store seeded with the built-in lists only.
// A nil source means the operator rule set is unavailable and the
// built-ins stay in effect.
func NewSnapshotStore(source RuleSource) *SnapshotStore {
	st := &SnapshotStore{
		source:      source,
		stopRefresh: make(chan struct{}),
	}
	st.current.Store(NewRuleSnapshot(nil))
	return st
}

// Current returns the active snapshot
func (st *SnapshotStore) Current() *RuleSnapshot {
	return st.current.Load()
}

// Refresh rebuilds the snapshot from the rule source and swaps it in
func (st *SnapshotStore) Refresh(ctx context.Context) error {
	if st.source == nil {
		return nil
	}

	operator, err := st.source.ActiveByCategory(ctx)
	if err != nil {
		logger.Error("Error fetching active keywords: "+err.Error(), "RuleSnapshot")
		return err
	}

	st.current.Store(NewRuleSnapshot(operator))

	total := 0
	for _, terms := range operator {
		total += len(terms)
	}
	logger.Info(fmt.Sprintf("Rule snapshot refreshed with %d operator keywords", total), "RuleSnapshot")
	return nil
}

// StartAutoRefresh refreshes the snapshot at the given interval.
// If already refreshing, the current refresher is stopped first.
func (st *SnapshotStore) StartAutoRefresh(interval time.Duration) {
	st.mu.Lock()
	if st.refreshing {
		close(st.stopRefresh)
	}
	st.refreshing = true
	st.stopRefresh = make(chan struct{})
	stopChan := st.stopRefresh
	st.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				_ = st.Refresh(ctx)
				cancel()
			case <-stopChan:
				return
			}
		}
	}()
}

// StopAutoRefresh stops the refresh loop
func (st *SnapshotStore) StopAutoRefresh() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.refreshing {
		close(st.stopRefresh)
		st.refreshing = false
	}
}
