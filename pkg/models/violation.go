package models

import "time"

// ViolationRecord is one enforced violation as persisted in the
// violations log file. Records are immutable once written.
type ViolationRecord struct {
	ID             int    `json:"id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	ViolationType  string `json:"violation_type"`
	MessageContent string `json:"message_content"`
	ChannelID      string `json:"channel_id"`
	GuildID        string `json:"guild_id"`
	Timestamp      string `json:"timestamp"` // ISO-8601 UTC
	Handled        bool   `json:"handled"`
}

// Time parses the record timestamp. Records written by this bot always
// carry RFC3339 timestamps; older hand-edited files may not.
func (r *ViolationRecord) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Timestamp)
}

// TopViolator is one entry of the per-user violation leaderboard
type TopViolator struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// ViolationStats aggregates a guild's violations over a time window
type ViolationStats struct {
	TotalViolations int            `json:"total_violations"`
	ViolationTypes  map[string]int `json:"violation_types"`
	TopViolators    []TopViolator  `json:"top_violators"`
	DailyBreakdown  map[string]int `json:"daily_breakdown"`
	AveragePerDay   float64        `json:"average_per_day"`
}
