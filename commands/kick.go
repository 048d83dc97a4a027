package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type KickCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *KickCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "kick",
		Description:              "Kicks a member from the server.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionKickMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to kick", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the kick", Required: false},
		},
	}
}

func (c *KickCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}
	if target.ID == ctx.User().ID {
		ctx.ReplyEphemeral("❌ You can't kick yourself.")
		return
	}
	reason := ctx.String("reason")

	if err := ctx.Session.GuildMemberDeleteWithReason(ctx.GuildID(), target.ID, reason); err != nil {
		c.Log.Error("Failed to kick member", "error", err, "guildID", ctx.GuildID(), "targetID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to kick. The member may outrank the bot.")
		return
	}

	if reason == "" {
		reason = "No reason given"
	}
	ctx.Reply(fmt.Sprintf("👢 Kicked **%s**. Reason: %s", target.Username, reason))

	sendModLog(ctx.Session, c.Store, ctx.GuildID(), &discordgo.MessageEmbed{
		Title: "Member kicked",
		Color: 0xfaa61a,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("%s (<@%s>)", target.Username, target.ID), Inline: true},
			{Name: "Moderator", Value: ctx.User().Mention(), Inline: true},
			{Name: "Reason", Value: reason, Inline: false},
		},
	})
}

func (c *KickCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *KickCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *KickCommand) GetComponentIDs() []string                                            { return nil }
func (c *KickCommand) GetCategory() string                                                  { return CategoryModeration }
