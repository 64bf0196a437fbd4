// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
	"github.com/bwmarrin/discordgo"
)

var store *violations.Store

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient, violationStore *violations.Store) {
	store = violationStore

	// Create individual subcommands (each can be in its own file)
	reportCmd := createReportCommand()
	violationsCmd := createViolationsCommand()
	clearCmd := createClearViolationsCommand()
	pruneCmd := createPruneCommand()

	// Build the /mod command group with all subcommands
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Lệnh kiểm duyệt dành cho quản trị viên",
		reportCmd,
		violationsCmd,
		clearCmd,
		pruneCmd,
	)

	// Only administrators see the group at all
	perms := int64(discordgo.PermissionAdministrator)
	modGroup.DefaultMemberPermissions = &perms

	// Register the command group
	client.CommandHandler.AddGlobalCommand(modGroup)
}
