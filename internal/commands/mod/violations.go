package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/errors"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// maxListedViolations caps how many entries fit into one embed
const maxListedViolations = 10

// createViolationsCommand creates the /mod violations subcommand
func createViolationsCommand() *discord.Command {
	return discord.NewCommand(
		"violations",
		"Xem lịch sử vi phạm của một người dùng (chỉ dành cho admin)",
		"mod",
		violationsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Người dùng cần tra cứu",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "days",
			Description: "Số ngày cần xem (mặc định 30)",
			Required:    false,
		},
	).AsAdmin()
}

func violationsHandler(ctx *discord.CommandContext) error {
	if !ctx.HasAdmin() {
		return ctx.ReplyEphemeral(discord.MsgNoPermission)
	}

	targetUser := ctx.GetUserOption("user")
	if targetUser == nil {
		return ctx.ReplyEphemeral("❌ Không tìm thấy người dùng.")
	}

	days := int(ctx.GetIntOption("days"))
	if days <= 0 {
		days = 30
	}

	guildID := ctx.Interaction.GuildID

	go func() {
		defer errors.RecoverMiddleware()()

		records := store.ForUser(targetUser.ID, guildID, days)

		if len(records) == 0 {
			embed := &discordgo.MessageEmbed{
				Title:       fmt.Sprintf("🔖 Lịch sử vi phạm của %s", targetUser.Username),
				Description: fmt.Sprintf("Không có vi phạm nào trong %d ngày qua.", days),
				Color:       0x00FF00,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			}
			if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
				logger.Error(fmt.Sprintf("Failed to send violations reply: %v", err), "CMD-Violations")
			}
			return
		}

		var list strings.Builder
		shown := records
		if len(shown) > maxListedViolations {
			shown = shown[len(shown)-maxListedViolations:]
		}
		for _, rec := range shown {
			content := rec.MessageContent
			if len([]rune(content)) > 60 {
				content = string([]rune(content)[:60]) + "..."
			}
			fmt.Fprintf(&list, "> **%s** — %s\n> %s\n\n", rec.ViolationType, rec.Timestamp, content)
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔖 Lịch sử vi phạm của %s (%s)", targetUser.Username, targetUser.ID),
			Description: fmt.Sprintf("**%d** vi phạm trong %d ngày qua\n\n%s", len(records), days, list.String()),
			Color:       0xFFA500,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}

		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Failed to send violations reply: %v", err), "CMD-Violations")
		}
	}()

	return nil
}
