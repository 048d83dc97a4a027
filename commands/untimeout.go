package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type UntimeoutCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *UntimeoutCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "untimeout",
		Description:              "Removes a member's timeout.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionModerateMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to release", Required: true},
		},
	}
}

func (c *UntimeoutCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}

	if err := ctx.Session.GuildMemberTimeout(ctx.GuildID(), target.ID, nil); err != nil {
		c.Log.Error("Failed to remove timeout", "error", err, "guildID", ctx.GuildID(), "targetID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to remove the timeout.")
		return
	}

	ctx.Reply(fmt.Sprintf("🔊 **%s** can talk again.", target.Username))
}

func (c *UntimeoutCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *UntimeoutCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *UntimeoutCommand) GetComponentIDs() []string                                            { return nil }
func (c *UntimeoutCommand) GetCategory() string                                                  { return CategoryModeration }
