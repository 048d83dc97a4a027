package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type BanCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *BanCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "ban",
		Description:              "Bans a user from the server.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionBanMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to ban", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "delete_days", Description: "Days of messages to delete (0-7)", Required: false, MinValue: &[]float64{0}[0], MaxValue: 7},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the ban", Required: false},
		},
	}
}

func (c *BanCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}
	if target.ID == ctx.User().ID {
		ctx.ReplyEphemeral("❌ You can't ban yourself.")
		return
	}

	deleteDays := int(ctx.Int("delete_days"))
	reason := ctx.String("reason")

	if err := ctx.Session.GuildBanCreateWithReason(ctx.GuildID(), target.ID, reason, deleteDays); err != nil {
		c.Log.Error("Failed to ban user", "error", err, "guildID", ctx.GuildID(), "targetID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to ban. The user may outrank the bot.")
		return
	}

	if reason == "" {
		reason = "No reason given"
	}
	ctx.Reply(fmt.Sprintf("🔨 Banned **%s**. Reason: %s", target.Username, reason))

	sendModLog(ctx.Session, c.Store, ctx.GuildID(), &discordgo.MessageEmbed{
		Title: "User banned",
		Color: 0xed4245,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("%s (<@%s>)", target.Username, target.ID), Inline: true},
			{Name: "Moderator", Value: ctx.User().Mention(), Inline: true},
			{Name: "Messages deleted", Value: fmt.Sprintf("%d days", deleteDays), Inline: true},
			{Name: "Reason", Value: reason, Inline: false},
		},
	})
}

func (c *BanCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *BanCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *BanCommand) GetComponentIDs() []string                                            { return nil }
func (c *BanCommand) GetCategory() string                                                  { return CategoryModeration }
