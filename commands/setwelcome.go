package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type SetWelcomeCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *SetWelcomeCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "setwelcome",
		Description:              "Configures the welcome message for new members.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Enables welcome messages in a channel.",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel for welcome messages", ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText}, Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "Template, {user} mentions the member and {server} is the server name", Required: false},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "off",
				Description: "Disables welcome messages.",
			},
		},
	}
}

func (c *SetWelcomeCommand) Handle(ctx *Context) {
	switch ctx.Subcommand() {
	case "set":
		c.enable(ctx)
	case "off":
		c.disable(ctx)
	}
}

func (c *SetWelcomeCommand) enable(ctx *Context) {
	ch := ctx.ChannelOpt("channel")
	if ch == nil {
		ctx.ReplyEphemeral("❌ Channel not found.")
		return
	}

	message := strings.TrimSpace(ctx.String("message"))
	if message == "" {
		message = "Welcome {user} to {server}! 🎉"
	}

	cfg := storage.WelcomeConfig{Enabled: true, ChannelID: ch.ID, Message: message}
	if err := c.Store.SaveConfig(ctx.GuildID(), "welcome_config", cfg); err != nil {
		c.Log.Error("Failed to save welcome config", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save the welcome settings.")
		return
	}

	preview := strings.NewReplacer("{user}", ctx.User().Mention(), "{server}", "this server").Replace(message)
	ctx.Reply(fmt.Sprintf("✅ Welcome messages enabled in <#%s>.\nPreview: %s", ch.ID, preview))
}

func (c *SetWelcomeCommand) disable(ctx *Context) {
	cfg := storage.WelcomeConfig{Enabled: false}
	if err := c.Store.SaveConfig(ctx.GuildID(), "welcome_config", cfg); err != nil {
		c.Log.Error("Failed to save welcome config", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save the welcome settings.")
		return
	}
	ctx.Reply("✅ Welcome messages disabled.")
}

func (c *SetWelcomeCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SetWelcomeCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SetWelcomeCommand) GetComponentIDs() []string                                            { return nil }
func (c *SetWelcomeCommand) GetCategory() string                                                  { return CategoryAdmin }
