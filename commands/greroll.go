package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type GRerollCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *GRerollCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "greroll",
		Description:              "Draws a new winner for an ended giveaway.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message_id", Description: "Message ID of the giveaway", Required: true},
		},
	}
}

func (c *GRerollCommand) Handle(ctx *Context) {
	messageID := ctx.String("message_id")
	if !snowflakePattern.MatchString(messageID) {
		ctx.ReplyEphemeral("❌ That does not look like a message ID.")
		return
	}

	g, err := c.Store.GetGiveaway(messageID)
	if err != nil || g.GuildID != ctx.GuildID() {
		ctx.ReplyEphemeral("❌ No giveaway found with that message ID.")
		return
	}
	if !g.Ended {
		ctx.ReplyEphemeral("❌ That giveaway is still running. End it first with `/gend`.")
		return
	}

	entries, err := c.Store.GetGiveawayEntries(messageID)
	if err != nil {
		c.Log.Error("Failed to load giveaway entries", "error", err, "messageID", messageID)
		ctx.ReplyEphemeral("❌ Failed to load the entries.")
		return
	}
	if len(entries) == 0 {
		ctx.ReplyEphemeral("❌ Nobody entered that giveaway.")
		return
	}

	winner := PickGiveawayWinners(entries, 1)[0]
	ctx.Session.ChannelMessageSend(g.ChannelID, fmt.Sprintf("🎲 Reroll! The new winner of **%s** is <@%s>!", g.Prize, winner))
	ctx.ReplyEphemeral("🎲 Rerolled.")
}

func (c *GRerollCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *GRerollCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *GRerollCommand) GetComponentIDs() []string                                            { return nil }
func (c *GRerollCommand) GetCategory() string                                                  { return CategoryGiveaways }
