package commands

import (
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type NowPlayingCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *NowPlayingCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "nowplaying",
		Description:  "Shows the track that is currently playing.",
		DMPermission: boolPtr(false),
	}
}

func (c *NowPlayingCommand) GetAliases() []string { return []string{"np"} }

func (c *NowPlayingCommand) Handle(ctx *Context) {
	track, ok := c.Player.Current(ctx.GuildID())
	if !ok {
		ctx.Reply("Nothing is playing right now.")
		return
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎵 " + track.Title,
		URL:         track.PageURL,
		Color:       0x2ecc71,
		Description: track.Author,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Length", Value: formatTrackDuration(track.Duration), Inline: true},
			{Name: "Requested by", Value: track.RequestedBy, Inline: true},
		},
	})
}

func (c *NowPlayingCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *NowPlayingCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *NowPlayingCommand) GetComponentIDs() []string                                            { return nil }
func (c *NowPlayingCommand) GetCategory() string                                                  { return CategoryMusic }
