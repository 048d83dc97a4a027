package commands

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type UnwarnCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *UnwarnCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "unwarn",
		Description:              "Removes a warning by its ID.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionModerateMembers),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Warning ID from /warnings", Required: true},
		},
	}
}

func (c *UnwarnCommand) Handle(ctx *Context) {
	id := ctx.Int("id")

	if err := c.Store.RemoveWarning(ctx.GuildID(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.ReplyEphemeral("❌ No warning with that ID. Look IDs up with `/warnings`.")
			return
		}
		c.Log.Error("Failed to remove warning", "error", err, "guildID", ctx.GuildID(), "warningID", id)
		ctx.ReplyEphemeral("❌ Failed to remove the warning.")
		return
	}

	ctx.Reply(fmt.Sprintf("✅ Warning `#%d` removed.", id))
}

func (c *UnwarnCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *UnwarnCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *UnwarnCommand) GetComponentIDs() []string                                            { return nil }
func (c *UnwarnCommand) GetCategory() string                                                  { return CategoryModeration }
