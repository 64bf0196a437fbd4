// Package events provides event handlers for guild (server) events
package events

import (
	"fmt"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildCreate(onGuildCreate)
	client.EventHandler.OnGuildDelete(onGuildDelete)
}

// onGuildCreate is called when the bot joins a server
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {

	Join := g.JoinedAt
	if Join.Compare(time.Now().Add(-10*time.Second)) < 0 {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot added to guild: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Members: %d | Channels: %d", g.MemberCount, len(g.Channels)), "Guild")

	if g.SystemChannelID != "" {
		welcomeEmbed := &discordgo.MessageEmbed{
			Title:       "Cảm ơn đã thêm GuardBot! 👮",
			Description: "Xin chào, mình là **GuardBot**. Mình sẽ tự động kiểm duyệt tin nhắn trong máy chủ này.",
			Color:       0x00ff00,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "🔍 Kiểm duyệt",
					Value:  "Tin nhắn vi phạm sẽ bị xoá và người gửi bị mute",
					Inline: true,
				},
				{
					Name:   "📊 Báo cáo",
					Value:  "Admin dùng `/mod report` để xem thống kê",
					Inline: true,
				},
				{
					Name:   "🔗 Invite",
					Value:  "Link mời Discord sẽ bị xoá tự động",
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "GuardBot Go",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		_, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to send welcome message: %v", err), "Guild")
		}
	}
}

// onGuildDelete is called when the bot is removed from a server
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	logger.Info(fmt.Sprintf("➖ Bot removed from guild ID: %s", g.ID), "Guild")
}
