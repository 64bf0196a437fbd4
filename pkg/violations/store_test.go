package violations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/goccy/go-json"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "violations.json"))
}

// TestRecordRoundTrip verifies that a recorded violation survives a
// reload with all fields intact
func TestRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)

	rec := store.Record("user1", "tester", "Ngôn từ thô tục", "nội dung xấu", "chan1", "guild1")

	if rec.ID != 1 {
		t.Errorf("ID = %d, want 1", rec.ID)
	}
	if !rec.Handled {
		t.Error("Handled should be true")
	}
	if _, err := rec.Time(); err != nil {
		t.Errorf("stored timestamp does not parse: %v", err)
	}

	records := store.Window("guild1", 7)
	if len(records) != 1 {
		t.Fatalf("Window returned %d records, want 1", len(records))
	}
	got := records[0]
	if got.UserID != "user1" || got.Username != "tester" || got.ViolationType != "Ngôn từ thô tục" {
		t.Errorf("unexpected record: %+v", got)
	}

	// IDs keep incrementing
	rec2 := store.Record("user2", "other", "Spam/Shouting", "AAAA", "chan1", "guild1")
	if rec2.ID != 2 {
		t.Errorf("second ID = %d, want 2", rec2.ID)
	}
}

// TestRecordTruncation verifies the 500-character content cap
func TestRecordTruncation(t *testing.T) {
	store := newTestStore(t)

	long := strings.Repeat("ă", 600)
	rec := store.Record("user1", "tester", "Spam/Shouting", long, "chan1", "guild1")

	if got := len([]rune(rec.MessageContent)); got != 500 {
		t.Errorf("stored content length = %d runes, want 500", got)
	}
}

// TestWindowFiltersGuild verifies guild partitioning of queries
func TestWindowFiltersGuild(t *testing.T) {
	store := newTestStore(t)

	store.Record("user1", "a", "Ngôn từ thô tục", "x", "chan1", "guild1")
	store.Record("user2", "b", "Ngôn từ thô tục", "y", "chan2", "guild2")

	if got := len(store.Window("guild1", 7)); got != 1 {
		t.Errorf("guild1 window = %d records, want 1", got)
	}
	if got := len(store.Window("", 7)); got != 2 {
		t.Errorf("all-guilds window = %d records, want 2", got)
	}
}

// TestForUser verifies per-user history
func TestForUser(t *testing.T) {
	store := newTestStore(t)

	store.Record("user1", "a", "Ngôn từ thô tục", "x", "chan1", "guild1")
	store.Record("user1", "a", "Spam/Shouting", "y", "chan1", "guild1")
	store.Record("user2", "b", "Ngôn từ thô tục", "z", "chan1", "guild1")

	if got := len(store.ForUser("user1", "guild1", 7)); got != 2 {
		t.Errorf("ForUser = %d records, want 2", got)
	}
}

// TestStats verifies the aggregate invariants: type counts sum to the
// total and violators are ranked by count
func TestStats(t *testing.T) {
	store := newTestStore(t)

	store.Record("user1", "alice", "Ngôn từ thô tục", "x", "c", "g")
	store.Record("user1", "alice", "Ngôn từ thô tục", "y", "c", "g")
	store.Record("user2", "bob", "Spam/Shouting", "z", "c", "g")

	stats := store.Stats("g", 7)

	if stats.TotalViolations != 3 {
		t.Errorf("TotalViolations = %d, want 3", stats.TotalViolations)
	}

	sum := 0
	for _, count := range stats.ViolationTypes {
		sum += count
	}
	if sum != stats.TotalViolations {
		t.Errorf("type counts sum to %d, want %d", sum, stats.TotalViolations)
	}

	if len(stats.TopViolators) != 2 {
		t.Fatalf("TopViolators = %d entries, want 2", len(stats.TopViolators))
	}
	if stats.TopViolators[0].UserID != "user1" || stats.TopViolators[0].Count != 2 {
		t.Errorf("top violator = %+v, want user1 with 2", stats.TopViolators[0])
	}

	// 3 violations over 7 days, rounded to 2 decimals
	if stats.AveragePerDay != 0.43 {
		t.Errorf("AveragePerDay = %v, want 0.43", stats.AveragePerDay)
	}
}

// TestStatsZeroDays verifies the division guard
func TestStatsZeroDays(t *testing.T) {
	store := newTestStore(t)
	store.Record("user1", "a", "Ngôn từ thô tục", "x", "c", "g")

	stats := store.Stats("g", 0)
	if stats.AveragePerDay != 0 {
		t.Errorf("AveragePerDay = %v, want 0 for zero-day window", stats.AveragePerDay)
	}
}

// TestClearGuildScoped verifies that clearing one guild keeps the others
func TestClearGuildScoped(t *testing.T) {
	store := newTestStore(t)

	store.Record("user1", "a", "Ngôn từ thô tục", "x", "c", "guild1")
	store.Record("user2", "b", "Ngôn từ thô tục", "y", "c", "guild2")

	store.Clear("guild1")

	if got := len(store.Window("guild1", 7)); got != 0 {
		t.Errorf("guild1 still has %d records after Clear", got)
	}
	if got := len(store.Window("guild2", 7)); got != 1 {
		t.Errorf("guild2 lost records: %d, want 1", got)
	}

	store.Clear("")
	if got := len(store.Window("", 7)); got != 0 {
		t.Errorf("store still has %d records after full Clear", got)
	}
}

// TestCleanup verifies retention pruning and its idempotence
func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "violations.json")

	// Seed one old and one fresh record directly
	old := models.ViolationRecord{
		ID: 1, UserID: "user1", Username: "a", ViolationType: "Ngôn từ thô tục",
		MessageContent: "x", ChannelID: "c", GuildID: "g",
		Timestamp: time.Now().UTC().AddDate(0, 0, -40).Format(time.RFC3339),
		Handled:   true,
	}
	fresh := models.ViolationRecord{
		ID: 2, UserID: "user2", Username: "b", ViolationType: "Spam/Shouting",
		MessageContent: "y", ChannelID: "c", GuildID: "g",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Handled:   true,
	}
	seed, _ := json.Marshal(fileData{Violations: []models.ViolationRecord{old, fresh}})
	if err := os.WriteFile(path, seed, 0644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store := NewStore(path)

	if removed := store.Cleanup(30); removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}
	if removed := store.Cleanup(30); removed != 0 {
		t.Errorf("second Cleanup removed %d, want 0", removed)
	}
	if got := len(store.Window("g", 60)); got != 1 {
		t.Errorf("store has %d records after cleanup, want 1", got)
	}
}

// TestCorruptFileBackup verifies that a corrupt log file is backed up
// and replaced with an empty collection
func TestCorruptFileBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "violations.json")

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store := NewStore(path)
	if got := len(store.Window("", 7)); got != 0 {
		t.Errorf("corrupt store should be empty, got %d records", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	backupFound := false
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".backup_") {
			backupFound = true
		}
	}
	if !backupFound {
		t.Error("no backup file created for corrupt violations log")
	}

	// The store keeps working after recovery
	rec := store.Record("user1", "a", "Ngôn từ thô tục", "x", "c", "g")
	if rec.ID != 1 {
		t.Errorf("post-recovery ID = %d, want 1", rec.ID)
	}
}

// TestMalformedTimestampSkipped verifies bad records are skipped, not fatal
func TestMalformedTimestampSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "violations.json")

	bad := models.ViolationRecord{
		ID: 1, UserID: "user1", Username: "a", ViolationType: "Ngôn từ thô tục",
		MessageContent: "x", ChannelID: "c", GuildID: "g",
		Timestamp: "not-a-timestamp", Handled: true,
	}
	good := models.ViolationRecord{
		ID: 2, UserID: "user2", Username: "b", ViolationType: "Spam/Shouting",
		MessageContent: "y", ChannelID: "c", GuildID: "g",
		Timestamp: time.Now().UTC().Format(time.RFC3339), Handled: true,
	}
	seed, _ := json.Marshal(fileData{Violations: []models.ViolationRecord{bad, good}})
	if err := os.WriteFile(path, seed, 0644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store := NewStore(path)

	records := store.Window("g", 7)
	if len(records) != 1 {
		t.Fatalf("Window = %d records, want 1 (bad timestamp skipped)", len(records))
	}
	if records[0].ID != 2 {
		t.Errorf("surviving record ID = %d, want 2", records[0].ID)
	}
}
