package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

type DashboardCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *DashboardCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "dashboard",
		Description:              "Manages the live server stats dashboard.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Posts a stats embed that refreshes every 5 minutes.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Channel for the dashboard message",
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						Required:     true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "off",
				Description: "Stops updating the dashboard.",
			},
		},
	}
}

func (c *DashboardCommand) Handle(ctx *Context) {
	switch ctx.Subcommand() {
	case "set":
		c.handleSet(ctx)
	case "off":
		if err := c.Store.SaveConfig(ctx.GuildID(), "dashboard_config", storage.DashboardConfig{}); err != nil {
			c.Log.Error("Failed to clear dashboard config", "error", err, "guildID", ctx.GuildID())
			ctx.ReplyEphemeral("❌ Failed to disable the dashboard.")
			return
		}
		ctx.Reply("🛑 Dashboard updates stopped. The last message stays where it is.")
	}
}

func (c *DashboardCommand) handleSet(ctx *Context) {
	ch := ctx.ChannelOpt("channel")
	if ch == nil {
		ctx.ReplyEphemeral("❌ Channel not found.")
		return
	}

	embed := renderDashboardEmbed(ctx.Session, c.Store, ctx.GuildID())
	msg, err := ctx.Session.ChannelMessageSendEmbed(ch.ID, embed)
	if err != nil {
		c.Log.Error("Failed to post dashboard message", "error", err, "channelID", ch.ID)
		ctx.ReplyEphemeral("❌ Failed to post the dashboard. Check my permissions in that channel.")
		return
	}

	cfg := storage.DashboardConfig{ChannelID: ch.ID, MessageID: msg.ID}
	if err := c.Store.SaveConfig(ctx.GuildID(), "dashboard_config", cfg); err != nil {
		c.Log.Error("Failed to save dashboard config", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save the dashboard settings.")
		return
	}

	ctx.ReplyEphemeral(fmt.Sprintf("✅ Dashboard posted in <#%s>. It refreshes every 5 minutes.", ch.ID))
}

// RefreshDashboard はダッシュボードメッセージを最新の統計で書き換えます。
// 定期ジョブとsetサブコマンドの両方から呼ばれます。
func RefreshDashboard(s *discordgo.Session, store interfaces.DataStore, log interfaces.Logger, guildID string) {
	var cfg storage.DashboardConfig
	if err := store.GetConfig(guildID, "dashboard_config", &cfg); err != nil || cfg.MessageID == "" {
		return
	}
	embed := renderDashboardEmbed(s, store, guildID)
	if _, err := s.ChannelMessageEditEmbed(cfg.ChannelID, cfg.MessageID, embed); err != nil {
		log.Warn("Failed to refresh dashboard", "error", err, "guildID", guildID, "messageID", cfg.MessageID)
	}
}

func renderDashboardEmbed(s *discordgo.Session, store interfaces.DataStore, guildID string) *discordgo.MessageEmbed {
	memberCount := 0
	guildName := "this server"
	if guild, err := s.State.Guild(guildID); err == nil {
		memberCount = guild.MemberCount
		guildName = guild.Name
	} else if guild, err := s.Guild(guildID); err == nil {
		memberCount = guild.ApproximateMemberCount
		guildName = guild.Name
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	joins, _ := store.CountEvents(guildID, storage.EventMemberJoin, dayAgo)
	leaves, _ := store.CountEvents(guildID, storage.EventMemberLeave, dayAgo)
	messages, _ := store.CountEvents(guildID, storage.EventMessage, dayAgo)
	commandsRun, _ := store.CountEvents(guildID, storage.EventCommandUsed, dayAgo)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📈 %s dashboard", guildName),
		Color: 0x1abc9c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Members", Value: fmt.Sprintf("%d", memberCount), Inline: true},
			{Name: "Joined (24h)", Value: fmt.Sprintf("%d", joins), Inline: true},
			{Name: "Left (24h)", Value: fmt.Sprintf("%d", leaves), Inline: true},
			{Name: "Messages (24h)", Value: fmt.Sprintf("%d", messages), Inline: true},
			{Name: "Commands (24h)", Value: fmt.Sprintf("%d", commandsRun), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Updated"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	return embed
}

func (c *DashboardCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *DashboardCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *DashboardCommand) GetComponentIDs() []string                                            { return nil }
func (c *DashboardCommand) GetCategory() string                                                  { return CategoryAnalytics }
