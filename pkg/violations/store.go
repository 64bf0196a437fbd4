// Package violations persists enforced violations in a JSON log file.
// The file is the single source of truth: every operation is a
// mutex-serialized load-modify-save over the whole collection.
package violations

import (
	"fmt"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/goccy/go-json"
)

// maxContentLength caps stored message content
const maxContentLength = 500

// fileData is the on-disk shape of the violation log
type fileData struct {
	Violations []models.ViolationRecord `json:"violations"`
}

// Store owns the persisted violation collection
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore opens (or creates) the violation log at path
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.save(&fileData{Violations: []models.ViolationRecord{}})
		logger.Info("Created new violations file: "+path, "Violations")
	}
	return s
}

// load reads the collection. A corrupt file is backed up under a
// timestamped name and replaced with an empty collection so the bot
// keeps running. Callers must hold the mutex.
func (s *Store) load() *fileData {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			empty := &fileData{Violations: []models.ViolationRecord{}}
			s.save(empty)
			return empty
		}
		logger.Error("Error loading violations file: "+err.Error(), "Violations")
		return &fileData{Violations: []models.ViolationRecord{}}
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Error("Violations file corrupted: "+err.Error(), "Violations")
		backup := fmt.Sprintf("%s.backup_%s", s.path, time.Now().Format("20060102_150405"))
		if renameErr := os.Rename(s.path, backup); renameErr == nil {
			logger.Info("Corrupted violations file backed up as: "+backup, "Violations")
		}
		empty := &fileData{Violations: []models.ViolationRecord{}}
		s.save(empty)
		return empty
	}

	if data.Violations == nil {
		data.Violations = []models.ViolationRecord{}
	}
	return &data
}

// save writes the collection back to disk. Callers must hold the mutex.
func (s *Store) save(data *fileData) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal violations: "+err.Error(), "Violations")
		return
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		logger.Error("Failed to save violations file: "+err.Error(), "Violations")
	}
}

// Record appends a new violation and returns the stored record.
// Persistence failures are logged and swallowed: enforcement has
// already happened and is not rolled back.
func (s *Store) Record(userID, username, violationType, content, channelID, guildID string) models.ViolationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()

	if len([]rune(content)) > maxContentLength {
		content = string([]rune(content)[:maxContentLength])
	}

	record := models.ViolationRecord{
		ID:             len(data.Violations) + 1,
		UserID:         userID,
		Username:       username,
		ViolationType:  violationType,
		MessageContent: content,
		ChannelID:      channelID,
		GuildID:        guildID,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Handled:        true,
	}

	data.Violations = append(data.Violations, record)
	s.save(data)

	logger.Info(fmt.Sprintf("Added violation for user %s (%s): %s", username, userID, violationType), "Violations")
	return record
}

// Window returns records newer than the cutoff, optionally filtered by
// guild (empty guildID means all guilds). Records with unparsable
// timestamps are skipped with a warning.
func (s *Store) Window(guildID string, days int) []models.ViolationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window(s.load(), guildID, days)
}

// window filters without taking the lock so Stats can reuse it
func (s *Store) window(data *fileData, guildID string, days int) []models.ViolationRecord {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	matched := make([]models.ViolationRecord, 0)
	for _, record := range data.Violations {
		ts, err := record.Time()
		if err != nil {
			logger.Warn(fmt.Sprintf("Invalid violation timestamp on record %d: %v", record.ID, err), "Violations")
			continue
		}
		if ts.Before(cutoff) {
			continue
		}
		if guildID != "" && record.GuildID != guildID {
			continue
		}
		matched = append(matched, record)
	}
	return matched
}

// ForUser returns a user's records inside the window, optionally
// filtered by guild
func (s *Store) ForUser(userID, guildID string, days int) []models.ViolationRecord {
	records := s.Window(guildID, days)

	matched := make([]models.ViolationRecord, 0)
	for _, record := range records {
		if record.UserID == userID {
			matched = append(matched, record)
		}
	}
	return matched
}

// Stats aggregates a guild's violations over the window
func (s *Store) Stats(guildID string, days int) models.ViolationStats {
	records := s.Window(guildID, days)

	stats := models.ViolationStats{
		ViolationTypes: make(map[string]int),
		DailyBreakdown: make(map[string]int),
		TopViolators:   []models.TopViolator{},
	}

	counts := make(map[string]*models.TopViolator)
	for _, record := range records {
		stats.TotalViolations++
		stats.ViolationTypes[record.ViolationType]++

		if entry, ok := counts[record.UserID]; ok {
			entry.Count++
		} else {
			counts[record.UserID] = &models.TopViolator{
				UserID:   record.UserID,
				Username: record.Username,
				Count:    1,
			}
		}

		if ts, err := record.Time(); err == nil {
			stats.DailyBreakdown[ts.Format("2006-01-02")]++
		}
	}

	for _, entry := range counts {
		stats.TopViolators = append(stats.TopViolators, *entry)
	}
	sort.Slice(stats.TopViolators, func(i, j int) bool {
		a, b := stats.TopViolators[i], stats.TopViolators[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Username < b.Username
	})
	if len(stats.TopViolators) > 5 {
		stats.TopViolators = stats.TopViolators[:5]
	}

	// Guard division by zero for a degenerate window
	if days > 0 {
		stats.AveragePerDay = math.Round(float64(stats.TotalViolations)/float64(days)*100) / 100
	}

	return stats
}

// Clear removes all records, or only one guild's records when guildID
// is non-empty
func (s *Store) Clear(guildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()

	if guildID == "" {
		data.Violations = []models.ViolationRecord{}
		logger.Info("Cleared all violations", "Violations")
	} else {
		kept := make([]models.ViolationRecord, 0, len(data.Violations))
		for _, record := range data.Violations {
			if record.GuildID != guildID {
				kept = append(kept, record)
			}
		}
		logger.Info(fmt.Sprintf("Cleared %d violations for guild %s", len(data.Violations)-len(kept), guildID), "Violations")
		data.Violations = kept
	}

	s.save(data)
}

// Cleanup removes records older than the retention window. When nothing
// is removed the file is left untouched.
func (s *Store) Cleanup(days int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	kept := make([]models.ViolationRecord, 0, len(data.Violations))
	for _, record := range data.Violations {
		ts, err := record.Time()
		if err != nil || !ts.Before(cutoff) {
			kept = append(kept, record)
		}
	}

	removed := len(data.Violations) - len(kept)
	if removed > 0 {
		data.Violations = kept
		s.save(data)
		logger.Info(fmt.Sprintf("Cleaned up %d old violations (older than %d days)", removed, days), "Violations")
	}
	return removed
}
