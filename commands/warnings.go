package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type WarningsCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *WarningsCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "warnings",
		Description:              "Lists a member's warnings.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionModerateMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to look up", Required: true},
		},
	}
}

func (c *WarningsCommand) Handle(ctx *Context) {
	target := ctx.UserOpt("user")
	if target == nil {
		ctx.ReplyEphemeral("❌ User not found.")
		return
	}

	warnings, err := c.Store.GetWarnings(ctx.GuildID(), target.ID)
	if err != nil {
		c.Log.Error("Failed to load warnings", "error", err, "guildID", ctx.GuildID(), "targetID", target.ID)
		ctx.ReplyEphemeral("❌ Failed to load warnings.")
		return
	}
	if len(warnings) == 0 {
		ctx.Reply(fmt.Sprintf("✨ **%s** has no warnings.", target.Username))
		return
	}

	var b strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&b, "`#%d` <t:%d:d> by <@%s>: %s\n", w.ID, w.CreatedAt.Unix(), w.ModeratorID, w.Reason)
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚠️ Warnings for %s (%d)", target.Username, len(warnings)),
		Description: b.String(),
		Color:       0xfee75c,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Remove one with /unwarn <id>"},
	})
}

func (c *WarningsCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *WarningsCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *WarningsCommand) GetComponentIDs() []string                                            { return nil }
func (c *WarningsCommand) GetCategory() string                                                  { return CategoryModeration }
