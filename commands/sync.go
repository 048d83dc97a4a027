package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/config"
	"logiq/interfaces"
)

// SyncCommand re-registers every slash command definition with Discord.
// Useful after a deploy that changed command options.
type SyncCommand struct {
	AllCommands map[string]CommandHandler
	Log         interfaces.Logger
}

func (c *SyncCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "sync",
		Description:              "Re-registers the bot's slash commands with Discord (owner only).",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionAdministrator),
		DMPermission:             boolPtr(false),
	}
}

func (c *SyncCommand) Handle(ctx *Context) {
	if ctx.User().ID != config.Cfg.Bot.OwnerID {
		ctx.ReplyEphemeral("You don't have permission to use this command.")
		return
	}

	if err := ctx.Defer(); err != nil {
		return
	}

	defs := make([]*discordgo.ApplicationCommand, 0, len(c.AllCommands))
	for _, handler := range c.AllCommands {
		defs = append(defs, handler.GetCommandDef())
	}

	if _, err := ctx.Session.ApplicationCommandBulkOverwrite(ctx.Session.State.User.ID, "", defs); err != nil {
		c.Log.Error("Failed to overwrite application commands", "error", err)
		ctx.EditReply("❌ Failed to sync commands with Discord.")
		return
	}

	c.Log.Info("Application commands synced", "count", len(defs))
	ctx.EditReply(fmt.Sprintf("🔄 Synced %d slash commands.", len(defs)))
}

func (c *SyncCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SyncCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SyncCommand) GetComponentIDs() []string                                            { return nil }
func (c *SyncCommand) GetCategory() string                                                  { return CategoryAdmin }
