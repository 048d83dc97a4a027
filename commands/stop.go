package commands

import (
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type StopCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *StopCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "stop",
		Description:  "Stops playback and clears the queue.",
		DMPermission: boolPtr(false),
	}
}

func (c *StopCommand) Handle(ctx *Context) {
	if !c.Player.Connected(ctx.GuildID()) {
		ctx.ReplyEphemeral("❌ I'm not in a voice channel.")
		return
	}
	c.Player.Stop(ctx.GuildID())
	ctx.Reply("⏹️ Stopped playback and cleared the queue.")
}

func (c *StopCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *StopCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *StopCommand) GetComponentIDs() []string                                            { return nil }
func (c *StopCommand) GetCategory() string                                                  { return CategoryMusic }
