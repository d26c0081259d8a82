package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/riffbot/internal/chat"
)

func TestToEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		msg    *discordgo.Message
		self   string
		want   chat.Event
		wantOK bool
	}{
		{
			name: "guild message",
			msg: &discordgo.Message{
				ID: "m1", ChannelID: "c1", GuildID: "g1", Content: "!prompt hi",
				Author: &discordgo.User{ID: "u1", Username: "alice"},
			},
			self:   "b1",
			want:   chat.Event{ID: "m1", AuthorID: "u1", AuthorName: "alice", ChannelID: "c1", Text: "!prompt hi"},
			wantOK: true,
		},
		{
			name: "direct message",
			msg: &discordgo.Message{
				ID: "m2", ChannelID: "dm1", Content: "hello",
				Author: &discordgo.User{ID: "u1", Username: "alice"},
			},
			self:   "b1",
			want:   chat.Event{ID: "m2", AuthorID: "u1", AuthorName: "alice", ChannelID: "dm1", Direct: true, Text: "hello"},
			wantOK: true,
		},
		{
			name: "own message",
			msg: &discordgo.Message{
				ID: "m3", ChannelID: "dm1", Content: "answer",
				Author: &discordgo.User{ID: "b1", Username: "riffbot", Bot: true},
			},
			self:   "b1",
			want:   chat.Event{ID: "m3", AuthorID: "b1", AuthorName: "riffbot", AuthorIsBot: true, FromSelf: true, ChannelID: "dm1", Direct: true, Text: "answer"},
			wantOK: true,
		},
		{
			name: "self unknown before ready",
			msg: &discordgo.Message{
				ID: "m4", ChannelID: "c1", GuildID: "g1",
				Author: &discordgo.User{ID: ""},
			},
			self:   "",
			want:   chat.Event{ID: "m4", ChannelID: "c1"},
			wantOK: true,
		},
		{name: "no author", msg: &discordgo.Message{ID: "m5"}, wantOK: false},
		{name: "nil message", msg: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := toEvent(tt.msg, tt.self)
			if ok != tt.wantOK {
				t.Fatalf("toEvent() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("toEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewRequiresToken(t *testing.T) {
	t.Parallel()

	if _, err := New("", nil); err == nil {
		t.Fatal("New() with empty token: expected error")
	}
}

func TestNewSetsIntents(t *testing.T) {
	t.Parallel()

	p, err := New("token", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.session.Identify.Intents&discordgo.IntentsMessageContent == 0 {
		t.Error("message content intent not requested")
	}
	if p.Name() != "discord" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestImageEmbed(t *testing.T) {
	t.Parallel()

	embed := imageEmbed("https://images.example.com/1.png")
	if embed.Image == nil || embed.Image.URL != "https://images.example.com/1.png" {
		t.Errorf("imageEmbed() = %+v", embed)
	}
}
