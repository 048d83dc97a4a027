package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

type ModuleCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *ModuleCommand) GetCommandDef() *discordgo.ApplicationCommand {
	moduleChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Categories))
	for _, cat := range Categories {
		// 管理モジュール自体は無効化させない
		if cat == CategoryAdmin {
			continue
		}
		moduleChoices = append(moduleChoices, &discordgo.ApplicationCommandOptionChoice{Name: cat, Value: cat})
	}

	return &discordgo.ApplicationCommand{
		Name:                     "module",
		Description:              "Enables or disables a feature module on this server.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Enables a module.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Module to enable", Required: true, Choices: moduleChoices},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Disables a module.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Module to disable", Required: true, Choices: moduleChoices},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Shows the status of every module.",
			},
		},
	}
}

func (c *ModuleCommand) Handle(ctx *Context) {
	switch ctx.Subcommand() {
	case "enable":
		c.setDisabled(ctx, ctx.String("name"), false)
	case "disable":
		c.setDisabled(ctx, ctx.String("name"), true)
	case "list":
		c.list(ctx)
	}
}

func (c *ModuleCommand) setDisabled(ctx *Context, module string, disabled bool) {
	if err := c.Store.SetModuleDisabled(ctx.GuildID(), module, disabled); err != nil {
		c.Log.Error("Failed to toggle module", "error", err, "guildID", ctx.GuildID(), "module", module)
		ctx.ReplyEphemeral("❌ Failed to update module settings.")
		return
	}
	if disabled {
		ctx.Reply(fmt.Sprintf("🔇 Module **%s** is now disabled on this server.", module))
		return
	}
	ctx.Reply(fmt.Sprintf("✅ Module **%s** is now enabled on this server.", module))
}

func (c *ModuleCommand) list(ctx *Context) {
	settings, err := c.Store.GetGuildSettings(ctx.GuildID())
	if err != nil {
		c.Log.Error("Failed to load guild settings", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to load module settings.")
		return
	}

	var b strings.Builder
	for _, cat := range Categories {
		if cat == CategoryAdmin {
			continue
		}
		status := "✅"
		if settings.ModuleDisabled(cat) {
			status = "❌"
		}
		fmt.Fprintf(&b, "%s %s\n", status, cat)
	}

	ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "Modules",
		Description: b.String(),
		Color:       0x5865f2,
	})
}

func (c *ModuleCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *ModuleCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *ModuleCommand) GetComponentIDs() []string                                            { return nil }
func (c *ModuleCommand) GetCategory() string                                                  { return CategoryAdmin }
