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

// createReportCommand creates the /mod report subcommand
func createReportCommand() *discord.Command {
	return discord.NewCommand(
		"report",
		"Xem báo cáo vi phạm trong 1 tuần qua (chỉ dành cho admin)",
		"mod",
		reportHandler,
	).AsAdmin()
}

func reportHandler(ctx *discord.CommandContext) error {
	if !ctx.HasAdmin() {
		return ctx.ReplyEphemeral(discord.MsgNoPermission)
	}

	go func() {
		defer errors.RecoverMiddleware()()

		stats := store.Stats(ctx.Interaction.GuildID, 7)

		if stats.TotalViolations == 0 {
			embed := &discordgo.MessageEmbed{
				Title:       "📊 Báo cáo vi phạm (7 ngày qua)",
				Description: "Không có vi phạm nào trong tuần qua.",
				Color:       0x00FF00,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			}
			if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
				logger.Error(fmt.Sprintf("Failed to send report reply: %v", err), "CMD-Report")
			}
			return
		}

		var types strings.Builder
		for vtype, count := range stats.ViolationTypes {
			fmt.Fprintf(&types, "• %s: %d\n", vtype, count)
		}

		var violators strings.Builder
		for _, v := range stats.TopViolators {
			fmt.Fprintf(&violators, "• %s: %d lần\n", v.Username, v.Count)
		}

		embed := &discordgo.MessageEmbed{
			Title:       "📊 Báo cáo vi phạm (7 ngày qua)",
			Description: fmt.Sprintf("Tổng cộng: **%d** vi phạm", stats.TotalViolations),
			Color:       0xED4245,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "📋 Loại vi phạm",
					Value:  orNone(types.String()),
					Inline: true,
				},
				{
					Name:   "👥 Top vi phạm",
					Value:  orNone(violators.String()),
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Dữ liệu từ 7 ngày qua",
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		if err := ctx.ReplyEphemeralEmbed(embed); err != nil {
			logger.Error(fmt.Sprintf("Failed to send report reply: %v", err), "CMD-Report")
		}
	}()

	return nil
}

func orNone(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Không có"
	}
	return text
}
