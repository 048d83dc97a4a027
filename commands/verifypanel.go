package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

const VerifyButtonID = "verify_button"

type VerifyPanelCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *VerifyPanelCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "verifypanel",
		Description:              "Posts a verification panel that grants a role on click.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role granted to verified members", Required: true},
		},
	}
}

func (c *VerifyPanelCommand) Handle(ctx *Context) {
	role := ctx.RoleOpt("role")
	if role == nil {
		ctx.ReplyEphemeral("❌ Role not found.")
		return
	}

	cfg := storage.VerificationConfig{RoleID: role.ID, ChannelID: ctx.ChannelID()}
	if err := c.Store.SaveConfig(ctx.GuildID(), "verification_config", cfg); err != nil {
		c.Log.Error("Failed to save verification config", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save verification settings.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Verification",
		Description: "Press the button below to verify yourself and unlock the server.",
		Color:       0x57f287,
	}
	// パネルは通常メッセージとして設置する。テキスト起動でも同じ見た目になる
	_, err := ctx.Session.ChannelMessageSendComplex(ctx.ChannelID(), &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Verify", Style: discordgo.SuccessButton, CustomID: VerifyButtonID, Emoji: &discordgo.ComponentEmoji{Name: "✅"}},
		}}},
	})
	if err != nil {
		c.Log.Error("Failed to post verification panel", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to post the panel.")
		return
	}

	ctx.ReplyEphemeral("✅ Verification panel posted.")
}

func (c *VerifyPanelCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var cfg storage.VerificationConfig
	if err := c.Store.GetConfig(i.GuildID, "verification_config", &cfg); err != nil || cfg.RoleID == "" {
		respondEphemeral(s, i, "❌ Verification is not configured on this server.")
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, i.Member.User.ID, cfg.RoleID); err != nil {
		c.Log.Error("Failed to grant verification role", "error", err, "guildID", i.GuildID, "userID", i.Member.User.ID)
		respondEphemeral(s, i, "❌ Could not grant the role. Check the bot's role position.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ You are verified! Granted <@&%s>.", cfg.RoleID))
}

func (c *VerifyPanelCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *VerifyPanelCommand) GetComponentIDs() []string                                        { return []string{VerifyButtonID} }
func (c *VerifyPanelCommand) GetCategory() string                                              { return CategoryVerification }
