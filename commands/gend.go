package commands

import (
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type GEndCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *GEndCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "gend",
		Description:              "Ends a giveaway immediately and draws winners.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message_id", Description: "Message ID of the giveaway", Required: true},
		},
	}
}

func (c *GEndCommand) Handle(ctx *Context) {
	messageID := ctx.String("message_id")
	if !snowflakePattern.MatchString(messageID) {
		ctx.ReplyEphemeral("❌ That does not look like a message ID.")
		return
	}

	g, err := c.Store.GetGiveaway(messageID)
	if err != nil || g.GuildID != ctx.GuildID() {
		ctx.ReplyEphemeral("❌ No giveaway found with that message ID. Check `/glist`.")
		return
	}
	if g.Ended {
		ctx.ReplyEphemeral("❌ That giveaway has already ended.")
		return
	}

	FinishGiveaway(ctx.Session, c.Store, c.Log, g)
	ctx.ReplyEphemeral("🏁 Giveaway ended.")
}

func (c *GEndCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *GEndCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *GEndCommand) GetComponentIDs() []string                                            { return nil }
func (c *GEndCommand) GetCategory() string                                                  { return CategoryGiveaways }
