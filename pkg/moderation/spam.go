package moderation

import (
	"regexp"
	"strings"
)

// Invite patterns checked as plain substrings before the regex
var discordInvitePatterns = []string{
	"discord.gg/",
	"discord.com/invite/",
	"discordapp.com/invite/",
}

// discordInviteRegex matches scheme-optional, www-optional invite URLs
// with a non-empty alphanumeric path segment. "discord.gg" with no code
// is not an invite.
var discordInviteRegex = regexp.MustCompile(`(?i)(https?://)?(www\.)?(discord\.(gg|io|me|li)|discordapp\.com/invite)/[a-zA-Z0-9]+`)

// mentionRegex matches Discord user and role mentions
var mentionRegex = regexp.MustCompile(`<@[!&]?\d+>`)

// HasDiscordInvite reports whether the message contains a Discord
// invite link. This check runs independently of the main verdict and
// can fire in addition to a keyword or AI violation.
func HasDiscordInvite(content string) bool {
	lower := strings.ToLower(content)

	for _, pattern := range discordInvitePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return discordInviteRegex.MatchString(content)
}

// HasRepeatedChars reports whether any character repeats 5+ times in a
// row. Go's regexp has no backreferences, so the run is counted by hand.
func HasRepeatedChars(content string) bool {
	var prev rune
	run := 0
	for _, r := range content {
		if r == prev {
			run++
			if run >= 5 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// CountPictographs counts emoji and pictographic symbols in the message
func CountPictographs(content string) int {
	count := 0
	for _, r := range content {
		switch {
		case r >= 0x1F600 && r <= 0x1F64F, // emoticons
			r >= 0x1F300 && r <= 0x1F5FF, // symbols and pictographs
			r >= 0x1F680 && r <= 0x1F6FF, // transport
			r >= 0x1F1E0 && r <= 0x1F1FF: // regional indicators
			count++
		}
	}
	return count
}

// CountMentions counts user and role mentions in the message
func CountMentions(content string) int {
	return len(mentionRegex.FindAllString(content, -1))
}

// IsPotentialSpam applies the spam heuristics: repeated characters,
// excessive emojis, excessive mentions. Available as a library check;
// not part of the main evaluation path.
func IsPotentialSpam(content string) bool {
	if HasRepeatedChars(content) {
		return true
	}
	if CountPictographs(content) > 10 {
		return true
	}
	if CountMentions(content) > 5 {
		return true
	}
	return false
}
