// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (util, mod, etc.)
package commands

import (
	"github.com/SaigonStudios/GuardBotGo/internal/commands/mod"
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, store *violations.Store) {
	// Utility commands
	RegisterUtilCommands(client)

	// Moderation commands (/mod report, /mod violations, /mod clearviolations, /mod prune)
	mod.RegisterModCommands(client, store)
}
