package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// Discordのタイムアウト上限
const maxTimeout = 28 * 24 * time.Hour

type TimeoutCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *TimeoutCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "timeout",
		Description:              "Times out a member so they cannot talk.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionModerateMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to time out", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "duration", Description: "How long, e.g. 10m, 2h, 1d (max 28d)", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the timeout", Required: false},
		},
	}
}

func (c *TimeoutCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}

	dur, err := ParseLongDuration(ctx.String("duration"))
	if err != nil {
		ctx.ReplyEphemeral("❌ Invalid duration. Use forms like `10m`, `2h` or `1d`.")
		return
	}
	if dur > maxTimeout {
		ctx.ReplyEphemeral("❌ Timeouts can last at most 28 days.")
		return
	}

	until := time.Now().Add(dur)
	if err := ctx.Session.GuildMemberTimeout(ctx.GuildID(), target.ID, &until); err != nil {
		c.Log.Error("Failed to time out member", "error", err, "guildID", ctx.GuildID(), "targetID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to time out. The member may outrank the bot.")
		return
	}

	reason := ctx.String("reason")
	if reason == "" {
		reason = "No reason given"
	}
	ctx.Reply(fmt.Sprintf("🤐 **%s** is timed out until <t:%d:f>. Reason: %s", target.Username, until.Unix(), reason))

	sendModLog(ctx.Session, c.Store, ctx.GuildID(), &discordgo.MessageEmbed{
		Title: "Member timed out",
		Color: 0xfaa61a,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("%s (<@%s>)", target.Username, target.ID), Inline: true},
			{Name: "Moderator", Value: ctx.User().Mention(), Inline: true},
			{Name: "Until", Value: fmt.Sprintf("<t:%d:f>", until.Unix()), Inline: true},
			{Name: "Reason", Value: reason, Inline: false},
		},
	})
}

func (c *TimeoutCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *TimeoutCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *TimeoutCommand) GetComponentIDs() []string                                            { return nil }
func (c *TimeoutCommand) GetCategory() string                                                  { return CategoryModeration }
