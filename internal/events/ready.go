// Package events provides event handlers for the bot
package events

import (
	"fmt"

	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.EventHandler.OnReady(onReady)
	client.EventHandler.OnRawEvent(onDebug)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot connected: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Connected to %d guilds", len(r.Guilds)), "Ready")

	err := s.UpdateGameStatus(0, "👮 Đang bảo vệ máy chủ")
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to set presence: %v", err), "Ready")
		return
	}

	logger.Debug("Bot presence set", "Ready")
}

func onDebug(s *discordgo.Session, e *discordgo.Event) {
	logger.Debug("Gateway event: "+e.Type, "DiscordGO")
}
