package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type AutoRoleCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *AutoRoleCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "autorole",
		Description:              "Automatically grants a role to new members.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageRoles),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Sets the role granted on join.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to grant", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Disables the auto role.",
			},
		},
	}
}

func (c *AutoRoleCommand) Handle(ctx *Context) {
	switch ctx.Subcommand() {
	case "enable":
		role := ctx.RoleOpt("role")
		if role == nil {
			ctx.ReplyEphemeral("❌ Role not found.")
			return
		}
		cfg := storage.AutoRoleConfig{Enabled: true, RoleID: role.ID}
		if err := c.Store.SaveConfig(ctx.GuildID(), "autorole_config", cfg); err != nil {
			c.Log.Error("Failed to save autorole config", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Failed to save the auto role.")
			return
		}
		ctx.Reply(fmt.Sprintf("✅ New members will receive <@&%s>.", role.ID))

	case "disable":
		cfg := storage.AutoRoleConfig{Enabled: false}
		if err := c.Store.SaveConfig(ctx.GuildID(), "autorole_config", cfg); err != nil {
			c.Log.Error("Failed to save autorole config", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Failed to update the auto role.")
			return
		}
		ctx.Reply("✅ Auto role disabled.")
	}
}

func (c *AutoRoleCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *AutoRoleCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *AutoRoleCommand) GetComponentIDs() []string                                            { return nil }
func (c *AutoRoleCommand) GetCategory() string                                                  { return CategoryRoles }
