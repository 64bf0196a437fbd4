package moderation

import (
	"strings"
	"testing"
)

// TestHasDiscordInvite covers the substring patterns and the regex
func TestHasDiscordInvite(t *testing.T) {
	cases := []struct {
		content string
		want    bool
	}{
		{"tham gia discord.gg/abc123 nhé", true},
		{"https://discord.gg/xyz", true},
		{"http://www.discord.io/party", true},
		{"discordapp.com/invite/abc", true},
		{"discord.com/invite/abc", true},
		{"DISCORD.GG/LOUD", true},
		{"tôi dùng discord.gg hằng ngày", false},
		{"discord là app chat", false},
		{"xin chào mọi người", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := HasDiscordInvite(tc.content); got != tc.want {
			t.Errorf("HasDiscordInvite(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

// TestHasRepeatedChars verifies the 5-in-a-row run threshold
func TestHasRepeatedChars(t *testing.T) {
	cases := []struct {
		content string
		want    bool
	}{
		{"aaaaa", true},
		{"hahahaaaaaa", true},
		{"aaaa", false},
		{"abababab", false},
		{"", false},
		{"ơơơơơ", true},
	}

	for _, tc := range cases {
		if got := HasRepeatedChars(tc.content); got != tc.want {
			t.Errorf("HasRepeatedChars(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

// TestCountMentions verifies user and role mention counting
func TestCountMentions(t *testing.T) {
	content := "<@123> <@!456> <@&789> hello <@> <@abc>"
	if got := CountMentions(content); got != 3 {
		t.Errorf("CountMentions = %d, want 3", got)
	}
}

// TestIsPotentialSpam covers each heuristic independently
func TestIsPotentialSpam(t *testing.T) {
	t.Run("repeated characters", func(t *testing.T) {
		if !IsPotentialSpam("spaaaaam") {
			t.Error("expected repeated-char spam to be flagged")
		}
	})

	t.Run("excessive emojis", func(t *testing.T) {
		if !IsPotentialSpam(strings.Repeat("😀", 11)) {
			t.Error("expected 11 emojis to be flagged")
		}
		if IsPotentialSpam(strings.Repeat("😀", 10)) {
			t.Error("10 emojis should not be flagged")
		}
	})

	t.Run("excessive mentions", func(t *testing.T) {
		if !IsPotentialSpam("<@1> <@2> <@3> <@4> <@5> <@6>") {
			t.Error("expected 6 mentions to be flagged")
		}
		if IsPotentialSpam("<@1> <@2> <@3> <@4> <@5>") {
			t.Error("5 mentions should not be flagged")
		}
	})

	t.Run("clean content", func(t *testing.T) {
		if IsPotentialSpam("một tin nhắn bình thường") {
			t.Error("clean content flagged as spam")
		}
	})
}
