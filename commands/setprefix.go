package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/config"
	"logiq/interfaces"
)

type SetPrefixCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *SetPrefixCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "setprefix",
		Description:              "Changes the text command prefix for this server.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "prefix",
				Description: "New prefix (up to 5 characters)",
				Required:    true,
			},
		},
	}
}

func (c *SetPrefixCommand) Handle(ctx *Context) {
	prefix := ctx.String("prefix")
	if err := config.ValidatePrefix(prefix); err != nil {
		c.Log.Debug("Rejected prefix", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Invalid prefix. Use up to 5 characters, not starting with `/`, `@` or `#`.")
		return
	}

	if err := c.Store.SetGuildPrefix(ctx.GuildID(), prefix); err != nil {
		c.Log.Error("Failed to save guild prefix", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save the new prefix.")
		return
	}

	ctx.Reply(fmt.Sprintf("✅ Prefix updated. Text commands now start with `%s` (e.g. `%sping`).", prefix, prefix))
}

func (c *SetPrefixCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SetPrefixCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SetPrefixCommand) GetComponentIDs() []string                                            { return nil }
func (c *SetPrefixCommand) GetCategory() string                                                  { return CategoryAdmin }
