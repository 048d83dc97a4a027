package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type WarnCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *WarnCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "warn",
		Description:              "Warns a member and records it.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionModerateMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to warn", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "What they did", Required: true},
		},
	}
}

func (c *WarnCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}
	if target.Bot {
		ctx.ReplyEphemeral("❌ Bots cannot be warned.")
		return
	}
	reason := ctx.String("reason")

	count, err := c.Store.AddWarning(ctx.GuildID(), target.ID, ctx.User().ID, reason)
	if err != nil {
		c.Log.Error("Failed to record warning", "error", err, "guildID", ctx.GuildID(), "targetID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to record the warning.")
		return
	}

	ctx.Reply(fmt.Sprintf("⚠️ **%s** has been warned (warning #%d). Reason: %s", target.Username, count, reason))

	// 本人にDMでも知らせる。DMを閉じている場合は黙って諦める
	if dm, err := ctx.Session.UserChannelCreate(target.ID); err == nil {
		ctx.Session.ChannelMessageSend(dm.ID, fmt.Sprintf("⚠️ You received a warning in the server. Reason: %s", reason))
	}

	sendModLog(ctx.Session, c.Store, ctx.GuildID(), &discordgo.MessageEmbed{
		Title: "Member warned",
		Color: 0xfee75c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("%s (<@%s>)", target.Username, target.ID), Inline: true},
			{Name: "Moderator", Value: ctx.User().Mention(), Inline: true},
			{Name: "Warning count", Value: fmt.Sprintf("%d", count), Inline: true},
			{Name: "Reason", Value: reason, Inline: false},
		},
	})
}

func (c *WarnCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *WarnCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *WarnCommand) GetComponentIDs() []string                                            { return nil }
func (c *WarnCommand) GetCategory() string                                                  { return CategoryModeration }
