package mod

import (
	"fmt"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/errors"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createPruneCommand creates the /mod prune subcommand
func createPruneCommand() *discord.Command {
	return discord.NewCommand(
		"prune",
		"Dọn các vi phạm cũ hơn một số ngày nhất định (chỉ dành cho admin)",
		"mod",
		pruneHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "days",
			Description: "Giữ lại vi phạm mới hơn số ngày này (mặc định 30)",
			Required:    false,
		},
	).AsAdmin()
}

func pruneHandler(ctx *discord.CommandContext) error {
	if !ctx.HasAdmin() {
		return ctx.ReplyEphemeral(discord.MsgNoPermission)
	}

	days := int(ctx.GetIntOption("days"))
	if days <= 0 {
		days = 30
	}

	go func() {
		defer errors.RecoverMiddleware()()

		removed := store.Cleanup(days)

		embed := &discordgo.MessageEmbed{
			Title:       "🧹 Dọn dẹp hoàn tất",
			Description: fmt.Sprintf("Đã xóa **%d** vi phạm cũ hơn %d ngày.", removed, days),
			Color:       0x00FF00,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Failed to send prune reply: %v", err), "CMD-Prune")
		}
	}()

	return nil
}
