package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type GListCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *GListCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "glist",
		Description:  "Lists the running giveaways on this server.",
		DMPermission: boolPtr(false),
	}
}

func (c *GListCommand) Handle(ctx *Context) {
	giveaways, err := c.Store.GetActiveGiveaways(ctx.GuildID())
	if err != nil {
		c.Log.Error("Failed to list giveaways", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load giveaways.")
		return
	}
	if len(giveaways) == 0 {
		ctx.Reply("No giveaways are running. Start one with `/gstart`.")
		return
	}

	var b strings.Builder
	for _, g := range giveaways {
		count, _ := c.Store.CountGiveawayEntries(g.MessageID)
		fmt.Fprintf(&b, "**%s** in <#%s>\n`%s` ends <t:%d:R>, %d winner(s), %d entries\n\n",
			g.Prize, g.ChannelID, g.MessageID, g.EndsAt.Unix(), g.Winners, count)
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎉 Running giveaways",
		Description: b.String(),
		Color:       0xe91e63,
	})
}

func (c *GListCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *GListCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *GListCommand) GetComponentIDs() []string                                            { return nil }
func (c *GListCommand) GetCategory() string                                                  { return CategoryGiveaways }
