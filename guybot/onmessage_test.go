package guybot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"

	"github.com/Kardbord/guybot/guybot/dispatch"
)

func TestToMessage(t *testing.T) {
	cases := []struct {
		name string
		msg  *discordgo.Message
		want *dispatch.Message
	}{
		{
			name: "nil",
			msg:  nil,
			want: nil,
		},
		{
			name: "no author",
			msg:  &discordgo.Message{ID: "1", Content: "!joke"},
			want: nil,
		},
		{
			name: "user",
			msg: &discordgo.Message{
				ID:        "1",
				ChannelID: "c",
				Content:   "!summon <@9>",
				Author:    &discordgo.User{ID: "u", Username: "guy"},
				Mentions:  []*discordgo.User{{ID: "9"}, nil},
			},
			want: &dispatch.Message{
				ID:         "1",
				AuthorID:   "u",
				AuthorName: "guy",
				ChannelID:  "c",
				Content:    "!summon <@9>",
				Mentions:   []string{"9"},
			},
		},
		{
			name: "other bot",
			msg: &discordgo.Message{
				ID:      "1",
				Content: "!joke",
				Author:  &discordgo.User{ID: "b", Username: "robot", Bot: true},
			},
			want: &dispatch.Message{ID: "1", AuthorID: "b", AuthorName: "robot", Content: "!joke", Bot: true},
		},
		{
			name: "self",
			msg: &discordgo.Message{
				ID:      "1",
				Content: "!joke",
				Author:  &discordgo.User{ID: "me", Username: "guybot"},
			},
			want: &dispatch.Message{ID: "1", AuthorID: "me", AuthorName: "guybot", Content: "!joke", Bot: true},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := toMessage(c.msg, "me")
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong message (-want +got):\n%s", diff)
			}
		})
	}
}
