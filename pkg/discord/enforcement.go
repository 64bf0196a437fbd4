package discord

import (
	"fmt"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// DeleteMessage removes a message from a channel. A failure is logged
// and returned so callers can decide whether to continue enforcing.
func (c *ExtendedClient) DeleteMessage(channelID, messageID string) error {
	if err := c.Session.ChannelMessageDelete(channelID, messageID); err != nil {
		logger.Warn("Failed to delete message "+messageID+": "+err.Error(), "Enforcement")
		return err
	}
	return nil
}

// TimeoutMember times out a guild member for the given number of minutes
func (c *ExtendedClient) TimeoutMember(guildID, userID string, minutes int) error {
	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := c.Session.GuildMemberTimeout(guildID, userID, &until); err != nil {
		logger.Warn("Failed to timeout member "+userID+": "+err.Error(), "Enforcement")
		return err
	}
	return nil
}

// NotifyUser sends the violator a DM embed explaining what happened.
// Users with closed DMs are skipped silently.
func (c *ExtendedClient) NotifyUser(userID, reason string, muteMinutes int) {
	channel, err := c.Session.UserChannelCreate(userID)
	if err != nil {
		logger.Debug("Could not open DM channel for "+userID+": "+err.Error(), "Enforcement")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⚠️ Tin nhắn của bạn đã bị xoá",
		Description: reason,
		Color:       0xED4245,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Thời gian mute",
				Value: fmt.Sprintf("%d phút", muteMinutes),
			},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := c.Session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		logger.Debug("Could not DM user "+userID+": "+err.Error(), "Enforcement")
	}
}
