package mod

import (
	"fmt"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/errors"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createClearViolationsCommand creates the /mod clearviolations subcommand
func createClearViolationsCommand() *discord.Command {
	return discord.NewCommand(
		"clearviolations",
		"Xóa tất cả dữ liệu vi phạm của máy chủ này (chỉ dành cho admin)",
		"mod",
		clearViolationsHandler,
	).AsAdmin()
}

func clearViolationsHandler(ctx *discord.CommandContext) error {
	if !ctx.HasAdmin() {
		return ctx.ReplyEphemeral(discord.MsgNoPermission)
	}

	guildID := ctx.Interaction.GuildID

	go func() {
		defer errors.RecoverMiddleware()()

		store.Clear(guildID)

		embed := &discordgo.MessageEmbed{
			Title:       "🗑️ Đã xóa dữ liệu",
			Description: "Tất cả dữ liệu vi phạm đã được xóa.",
			Color:       0x00FF00,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Failed to send clearviolations reply: %v", err), "CMD-ClearViolations")
		}
	}()

	return nil
}
