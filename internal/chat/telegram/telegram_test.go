package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/riffbot/internal/chat"
)

func TestToEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		msg    *models.Message
		want   chat.Event
		wantOK bool
	}{
		{
			name: "group command",
			msg: &models.Message{
				ID:   7,
				From: &models.User{ID: 42, Username: "alice"},
				Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
				Text: "/prompt@riffbot hi there",
			},
			want:   chat.Event{ID: "7", AuthorID: "42", AuthorName: "alice", ChannelID: "-100", Text: "/prompt hi there"},
			wantOK: true,
		},
		{
			name: "private chat",
			msg: &models.Message{
				ID:   8,
				From: &models.User{ID: 42, Username: "alice"},
				Chat: models.Chat{ID: 42, Type: models.ChatTypePrivate},
				Text: "hello",
			},
			want:   chat.Event{ID: "8", AuthorID: "42", AuthorName: "alice", ChannelID: "42", Direct: true, Text: "hello"},
			wantOK: true,
		},
		{
			name: "own message",
			msg: &models.Message{
				ID:   9,
				From: &models.User{ID: 1, Username: "riffbot", IsBot: true},
				Chat: models.Chat{ID: 42, Type: models.ChatTypePrivate},
				Text: "answer",
			},
			want:   chat.Event{ID: "9", AuthorID: "1", AuthorName: "riffbot", AuthorIsBot: true, FromSelf: true, ChannelID: "42", Direct: true, Text: "answer"},
			wantOK: true,
		},
		{name: "channel post without sender", msg: &models.Message{ID: 10, Text: "news"}, wantOK: false},
		{name: "nil message", msg: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := toEvent(tt.msg, 1, "riffbot", "/")
			if ok != tt.wantOK {
				t.Fatalf("toEvent() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("toEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripMention(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		username string
		want     string
	}{
		{text: "/forget@riffbot", username: "riffbot", want: "/forget"},
		{text: "/forget@RiffBot", username: "riffbot", want: "/forget"},
		{text: "/prompt@riffbot a b", username: "riffbot", want: "/prompt a b"},
		{text: "/prompt@otherbot a", username: "riffbot", want: "/prompt@otherbot a"},
		{text: "plain text @riffbot", username: "riffbot", want: "plain text @riffbot"},
		{text: "/help", username: "", want: "/help"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			if got := stripMention(tt.text, "/", tt.username); got != tt.want {
				t.Errorf("stripMention(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewRequiresToken(t *testing.T) {
	t.Parallel()

	if _, err := New("", "/", nil); err == nil {
		t.Fatal("New() with empty token: expected error")
	}
}
