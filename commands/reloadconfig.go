package commands

import (
	"github.com/bwmarrin/discordgo"

	"logiq/config"
	"logiq/interfaces"
)

// ReloadConfigCommand reloads config.yaml without restarting the bot.
// Owner only. The token and database path are not re-applied until restart.
type ReloadConfigCommand struct {
	Log interfaces.Logger
}

func (c *ReloadConfigCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "reloadconfig",
		Description:              "Reloads the bot's configuration file (owner only).",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionAdministrator),
	}
}

func (c *ReloadConfigCommand) Handle(ctx *Context) {
	if ctx.User().ID != config.Cfg.Bot.OwnerID {
		ctx.ReplyEphemeral("You don't have permission to use this command.")
		return
	}

	if err := config.Reload(); err != nil {
		c.Log.Error("Config reload failed", "error", err)
		ctx.ReplyEphemeral("❌ Reload failed. Check the bot log for details.")
		return
	}

	c.Log.Info("Config reloaded", "by", ctx.User().ID)
	ctx.ReplyEphemeral("✅ Configuration reloaded.")
}

func (c *ReloadConfigCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *ReloadConfigCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *ReloadConfigCommand) GetComponentIDs() []string                                            { return nil }
func (c *ReloadConfigCommand) GetCategory() string                                                  { return CategoryAdmin }
