package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type PlayCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *PlayCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "play",
		Description:  "Plays audio from a URL, or queues it if something is playing.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "Video or audio URL (anything yt-dlp understands)",
				Required:    true,
			},
		},
	}
}

func (c *PlayCommand) Handle(ctx *Context) {
	url := ctx.String("url")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		ctx.ReplyEphemeral("❌ That doesn't look like a URL.")
		return
	}

	// 未接続なら実行者のいるVCへ入る
	if !c.Player.Connected(ctx.GuildID()) {
		vs, err := ctx.Session.State.VoiceState(ctx.GuildID(), ctx.User().ID)
		if err != nil || vs == nil || vs.ChannelID == "" {
			ctx.ReplyEphemeral("❌ Join a voice channel first, then try again.")
			return
		}
		if err := c.Player.Join(ctx.GuildID(), vs.ChannelID); err != nil {
			c.Log.Error("Failed to join voice channel", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Couldn't join your voice channel.")
			return
		}
	}

	if err := ctx.Defer(); err != nil {
		return
	}

	resolveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	track, err := player.Resolve(resolveCtx, url)
	if err != nil {
		c.Log.Error("Failed to resolve track", "error", err, "url", url)
		ctx.EditReply("❌ Couldn't load that URL. Make sure it points to a playable video or audio.")
		return
	}
	track.RequestedBy = ctx.User().Username

	position, err := c.Player.Enqueue(ctx.GuildID(), track)
	if err != nil {
		ctx.EditReply("❌ I'm not in a voice channel anymore.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Channel", Value: track.Author, Inline: true},
			{Name: "Length", Value: formatTrackDuration(track.Duration), Inline: true},
		},
	}
	if position == 0 {
		embed.Title = fmt.Sprintf("▶️ Now playing: %s", track.Title)
	} else {
		embed.Title = fmt.Sprintf("📝 Queued: %s", track.Title)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Position", Value: fmt.Sprintf("#%d", position), Inline: true,
		})
	}
	ctx.EditReplyEmbed(embed)
}

func (c *PlayCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *PlayCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *PlayCommand) GetComponentIDs() []string                                            { return nil }
func (c *PlayCommand) GetCategory() string                                                  { return CategoryMusic }
