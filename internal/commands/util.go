// Package commands provides utility commands for the bot.
package commands

import (
	"fmt"

	"github.com/SaigonStudios/GuardBotGo/pkg/database"
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
)

// RegisterUtilCommands registers all utility commands
func RegisterUtilCommands(client *discord.ExtendedClient) {
	// Ping command
	pingCmd := discord.NewCommand(
		"ping",
		"Kiểm tra độ trễ của bot",
		"util",
		func(ctx *discord.CommandContext) error {
			latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
			return ctx.Reply(fmt.Sprintf("🏓 Pong! Độ trễ: %dms", latency))
		},
	)
	client.CommandHandler.RegisterCommand(pingCmd)
	client.CommandHandler.AddGlobalCommand(pingCmd.ToApplicationCommand())

	// Status command
	statusCmd := discord.NewCommand(
		"status",
		"Xem trạng thái của bot",
		"util",
		func(ctx *discord.CommandContext) error {
			db := database.Get()
			dbStatus, _ := db.GetStatus()

			return ctx.Reply(fmt.Sprintf(
				"📊 **Trạng thái bot**\n"+
					"• Bot: 🟢 Online\n"+
					"• Cơ sở dữ liệu: %s\n"+
					"• Máy chủ: %d",
				dbStatus,
				ctx.Client.GuildCount(),
			))
		},
	)
	client.CommandHandler.RegisterCommand(statusCmd)
	client.CommandHandler.AddGlobalCommand(statusCmd.ToApplicationCommand())

	// Help command
	helpCmd := discord.NewCommand(
		"help",
		"Xem thông tin trợ giúp",
		"util",
		func(ctx *discord.CommandContext) error {
			return ctx.Reply(
				"📖 **Trợ giúp GuardBot Go**\n\n" +
					"**Các lệnh khả dụng:**\n" +
					"• `/ping` - Kiểm tra độ trễ\n" +
					"• `/status` - Trạng thái bot\n" +
					"• `/mod report` - Báo cáo vi phạm 7 ngày (admin)\n" +
					"• `/mod violations <user>` - Lịch sử vi phạm (admin)\n" +
					"• `/mod clearviolations` - Xóa dữ liệu vi phạm (admin)\n" +
					"• `/mod prune [days]` - Dọn vi phạm cũ (admin)",
			)
		},
	)
	client.CommandHandler.RegisterCommand(helpCmd)
	client.CommandHandler.AddGlobalCommand(helpCmd.ToApplicationCommand())
}
