package commands

import (
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/player"
)

type SkipCommand struct {
	Player *player.Manager
	Log    interfaces.Logger
}

func (c *SkipCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "skip",
		Description:  "Skips the current track.",
		DMPermission: boolPtr(false),
	}
}

func (c *SkipCommand) Handle(ctx *Context) {
	if !c.Player.Skip(ctx.GuildID()) {
		ctx.ReplyEphemeral("❌ Nothing is playing.")
		return
	}
	ctx.Reply("⏭️ Skipped.")
}

func (c *SkipCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SkipCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SkipCommand) GetComponentIDs() []string                                            { return nil }
func (c *SkipCommand) GetCategory() string                                                  { return CategoryMusic }
