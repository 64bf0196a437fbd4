// Package events provides event handlers for message events
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/database"
	"github.com/SaigonStudios/GuardBotGo/pkg/discord"
	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/SaigonStudios/GuardBotGo/pkg/moderation"
	"github.com/SaigonStudios/GuardBotGo/pkg/violations"
	"github.com/bwmarrin/discordgo"
)

// evaluateTimeout bounds one full message evaluation, AI call included
const evaluateTimeout = 20 * time.Second

// ViolationSink receives every violation after it has been recorded.
// Implementations must not block.
type ViolationSink interface {
	ViolationRecorded(record models.ViolationRecord)
}

// Pipeline wires the moderation service, the violation store and the
// downstream sinks into the message events.
type Pipeline struct {
	Client  *discord.ExtendedClient
	Service *moderation.Service
	Store   *violations.Store
	Sinks   []ViolationSink
}

var pipeline *Pipeline

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient, p *Pipeline) {
	pipeline = p
	client.EventHandler.OnMessageCreate(onMessageCreate)
	client.EventHandler.OnMessageUpdate(onMessageUpdate)
}

// onMessageCreate is called when a new message is created
func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if pipeline == nil {
		return
	}
	pipeline.inspect(s, m.Message)
}

// onMessageUpdate is called when a message is edited. Edits go through
// the same pipeline so a clean message cannot be edited into a violation.
func onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if pipeline == nil || m.Message == nil {
		return
	}
	pipeline.inspect(s, m.Message)
}

// inspect runs one message through the moderation pipeline
func (p *Pipeline) inspect(s *discordgo.Session, m *discordgo.Message) {
	// Ignore bots, DMs and empty payloads (embed-only edits)
	if m.Author == nil || m.Author.Bot || m.GuildID == "" || m.Content == "" {
		return
	}

	// Administrators are exempt
	if perms, err := s.State.MessagePermissions(m); err == nil && perms&discordgo.PermissionAdministrator != 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), evaluateTimeout)
	defer cancel()

	verdict := p.Service.Evaluate(ctx, m.Content)
	if verdict.IsViolation {
		p.handleViolation(m, verdict)
	}

	// The invite check runs independently of the verdict
	if moderation.HasDiscordInvite(m.Content) {
		p.handleInvite(m)
	}
}

// handleViolation deletes the message, mutes the author and records the
// violation. Enforcement comes first; record and DM failures never undo it.
func (p *Pipeline) handleViolation(m *discordgo.Message, verdict models.Verdict) {
	label := verdict.ViolationType.Label()
	minutes := database.MuteDurationMinutes()

	if err := p.Client.DeleteMessage(m.ChannelID, m.ID); err != nil {
		return
	}
	p.Client.TimeoutMember(m.GuildID, m.Author.ID, minutes)

	record := p.Store.Record(m.Author.ID, m.Author.Username, label, m.Content, m.ChannelID, m.GuildID)
	p.notifySinks(record)

	p.Client.NotifyUser(m.Author.ID,
		fmt.Sprintf("Tin nhắn của bạn đã bị xóa do vi phạm quy định: **%s**\n%s", label, verdict.Reason),
		minutes)

	logger.Info(fmt.Sprintf("Handled violation from %s in guild %s: %s", m.Author.Username, m.GuildID, label), "Moderation")
}

// handleInvite enforces the invite-link rule with its own mute duration
func (p *Pipeline) handleInvite(m *discordgo.Message) {
	minutes := database.InviteMuteDurationMinutes()

	if err := p.Client.DeleteMessage(m.ChannelID, m.ID); err != nil {
		return
	}
	p.Client.TimeoutMember(m.GuildID, m.Author.ID, minutes)

	record := p.Store.Record(m.Author.ID, m.Author.Username, models.ViolationDiscordInvite.Label(), m.Content, m.ChannelID, m.GuildID)
	p.notifySinks(record)

	p.Client.NotifyUser(m.Author.ID, "Tin nhắn chứa link Discord invite đã bị xóa", minutes)

	logger.Info(fmt.Sprintf("Removed Discord invite from %s in guild %s", m.Author.Username, m.GuildID), "Moderation")
}

func (p *Pipeline) notifySinks(record models.ViolationRecord) {
	for _, sink := range p.Sinks {
		sink.ViolationRecorded(record)
	}
}
