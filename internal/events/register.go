// Package events provides a registry for organizing bot events.
// Events are organized by category (guild, message, etc.)
package events

import (
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, pipeline *Pipeline) {
	logger.System("📋 Registering bot events...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Message events (the moderation pipeline)
	RegisterMessageEvents(client, pipeline)

	logger.Success("✅ All events registered", "Events")
}
