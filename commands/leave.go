package commands

import (
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type LeaveCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *LeaveCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "leave",
		Description:  "Leaves the voice channel and clears the queue.",
		DMPermission: boolPtr(false),
	}
}

func (c *LeaveCommand) Handle(ctx *Context) {
	if !c.Player.Connected(ctx.GuildID()) {
		ctx.ReplyEphemeral("❌ I'm not in a voice channel.")
		return
	}
	c.Player.Leave(ctx.GuildID())
	ctx.Reply("👋 Left the voice channel.")
}

func (c *LeaveCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *LeaveCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *LeaveCommand) GetComponentIDs() []string                                            { return nil }
func (c *LeaveCommand) GetCategory() string                                                  { return CategoryMusic }
