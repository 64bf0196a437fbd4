package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// TestEventHandlerRegistersDispatchableTypes verifies that the typed
// registration helpers hand the session plain function types. The
// session dispatches on the exact type, so a named handler type would
// silently never fire.
func TestEventHandlerRegistersDispatchableTypes(t *testing.T) {
	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	client := &ExtendedClient{Session: session}
	eh := NewEventHandler(client)

	eh.OnReady(func(s *discordgo.Session, r *discordgo.Ready) {})
	eh.OnGuildCreate(func(s *discordgo.Session, g *discordgo.GuildCreate) {})
	eh.OnGuildDelete(func(s *discordgo.Session, g *discordgo.GuildDelete) {})
	eh.OnMessageCreate(func(s *discordgo.Session, m *discordgo.MessageCreate) {})
	eh.OnMessageUpdate(func(s *discordgo.Session, m *discordgo.MessageUpdate) {})
	eh.OnInteractionCreate(func(s *discordgo.Session, i *discordgo.InteractionCreate) {})
	eh.OnRawEvent(func(s *discordgo.Session, e *discordgo.Event) {})

	if len(eh.events) != 7 {
		t.Fatalf("registered %d handlers, want 7", len(eh.events))
	}

	for i, handler := range eh.events {
		switch handler.(type) {
		case func(*discordgo.Session, *discordgo.Ready),
			func(*discordgo.Session, *discordgo.GuildCreate),
			func(*discordgo.Session, *discordgo.GuildDelete),
			func(*discordgo.Session, *discordgo.MessageCreate),
			func(*discordgo.Session, *discordgo.MessageUpdate),
			func(*discordgo.Session, *discordgo.InteractionCreate),
			func(*discordgo.Session, *discordgo.Event):
		default:
			t.Errorf("handler %d registered as %T, which the session cannot dispatch", i, handler)
		}
	}
}
