package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type SetLogChannelCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *SetLogChannelCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "setlogchannel",
		Description:              "Sets the channel where audit events are posted.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "Text channel for audit logs",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				Required:     true,
			},
		},
	}
}

func (c *SetLogChannelCommand) Handle(ctx *Context) {
	ch := ctx.ChannelOpt("channel")
	if ch == nil {
		ctx.ReplyEphemeral("❌ Channel not found.")
		return
	}

	cfg := storage.LogConfig{ChannelID: ch.ID}
	if err := c.Store.SaveConfig(ctx.GuildID(), "log_config", cfg); err != nil {
		c.Log.Error("Failed to save log channel", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save the log channel.")
		return
	}

	ctx.Reply(fmt.Sprintf("✅ Audit events will be posted to <#%s>.", ch.ID))
}

func (c *SetLogChannelCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SetLogChannelCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SetLogChannelCommand) GetComponentIDs() []string                                            { return nil }
func (c *SetLogChannelCommand) GetCategory() string                                                  { return CategoryAdmin }
