package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type QueueCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *QueueCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "queue",
		Description:  "Shows the playback queue.",
		DMPermission: boolPtr(false),
	}
}

func (c *QueueCommand) Handle(ctx *Context) {
	current, playing := c.Player.Current(ctx.GuildID())
	queue := c.Player.Queue(ctx.GuildID())

	if !playing && len(queue) == 0 {
		ctx.Reply("The queue is empty. Add something with `play <url>`.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎶 Playback queue",
		Color: 0x2ecc71,
	}
	if playing {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Now playing",
			Value: fmt.Sprintf("**%s** (%s) · requested by %s", current.Title, formatTrackDuration(current.Duration), current.RequestedBy),
		})
	}

	if len(queue) > 0 {
		var b strings.Builder
		shown := queue
		if len(shown) > 10 {
			shown = shown[:10]
		}
		for i, t := range shown {
			fmt.Fprintf(&b, "`%d.` %s (%s)\n", i+1, t.Title, formatTrackDuration(t.Duration))
		}
		if rest := len(queue) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "…and %d more\n", rest)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Up next (%d)", len(queue)),
			Value: b.String(),
		})
	}

	ctx.ReplyEmbed(embed)
}

// formatTrackDuration は曲の長さを m:ss (1時間以上は h:mm:ss) で整形します。
func formatTrackDuration(d time.Duration) string {
	if d <= 0 {
		return "live"
	}
	total := int(d.Round(time.Second).Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func (c *QueueCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *QueueCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *QueueCommand) GetComponentIDs() []string                                            { return nil }
func (c *QueueCommand) GetCategory() string                                                  { return CategoryMusic }
