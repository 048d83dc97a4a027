package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

const (
	TicketOpenButtonID   = "ticket_open_button"
	TicketModalID        = "ticket_modal"
	TicketCloseButtonID  = "ticket_close_button"
	TicketDeleteButtonID = "ticket_delete_button"
)

type TicketPanelCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *TicketPanelCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "ticketpanel",
		Description:              "Posts a ticket panel in this channel.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "category", Description: "Category where ticket channels are created", ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory}, Required: true},
			{Type: discordgo.ApplicationCommandOptionRole, Name: "staff", Description: "Role that can see all tickets", Required: true},
		},
	}
}

func (c *TicketPanelCommand) Handle(ctx *Context) {
	category := ctx.ChannelOpt("category")
	staff := ctx.RoleOpt("staff")
	if category == nil || staff == nil {
		ctx.ReplyEphemeral("❌ Category or staff role not found.")
		return
	}

	cfg := storage.TicketConfig{
		PanelChannelID: ctx.ChannelID(),
		CategoryID:     category.ID,
		StaffRoleID:    staff.ID,
	}
	if err := c.Store.SaveConfig(ctx.GuildID(), "ticket_config", cfg); err != nil {
		c.Log.Error("Failed to save ticket config", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save ticket settings.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎫 Support",
		Description: "Need help? Press the button below to open a private ticket with the staff team.",
		Color:       0x5865f2,
	}
	_, err := ctx.Session.ChannelMessageSendComplex(ctx.ChannelID(), &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Open a ticket", Style: discordgo.SuccessButton, CustomID: TicketOpenButtonID, Emoji: &discordgo.ComponentEmoji{Name: "✉️"}},
		}}},
	})
	if err != nil {
		c.Log.Error("Failed to post ticket panel", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to post the panel.")
		return
	}

	ctx.ReplyEphemeral("✅ Ticket panel posted.")
}

func (c *TicketPanelCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.MessageComponentData().CustomID {
	case TicketOpenButtonID:
		c.showTicketModal(s, i)
	case TicketCloseButtonID:
		c.closeTicket(s, i)
	case TicketDeleteButtonID:
		c.deleteTicket(s, i)
	}
}

func (c *TicketPanelCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ModalSubmitData().CustomID == TicketModalID {
		c.createTicket(s, i)
	}
}

func (c *TicketPanelCommand) showTicketModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: TicketModalID,
			Title:    "Open a ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "subject", Label: "Subject", Style: discordgo.TextInputShort, Placeholder: "What do you need help with?", Required: true, MaxLength: 100},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "details", Label: "Details", Style: discordgo.TextInputParagraph, Placeholder: "Describe the problem in as much detail as you can.", Required: true, MaxLength: 2000},
				}},
			},
		},
	})
	if err != nil {
		c.Log.Error("Failed to show ticket modal", "error", err)
	}
}

func (c *TicketPanelCommand) createTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := deferEphemeral(s, i); err != nil {
		return
	}

	data := i.ModalSubmitData()
	subject := data.Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
	details := data.Components[1].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value

	var cfg storage.TicketConfig
	if err := c.Store.GetConfig(i.GuildID, "ticket_config", &cfg); err != nil || cfg.CategoryID == "" {
		c.Log.Error("Ticket config missing", "error", err, "guildID", i.GuildID)
		editResponse(s, i, "❌ Tickets are not configured on this server.")
		return
	}

	counter, err := c.Store.GetNextTicketCounter(i.GuildID)
	if err != nil {
		c.Log.Error("Failed to get ticket counter", "error", err, "guildID", i.GuildID)
		editResponse(s, i, "❌ Failed to create the ticket.")
		return
	}

	opener := i.Member.User
	ch, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     fmt.Sprintf("ticket-%04d-%s", counter, sanitizeChannelName(opener.Username)),
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    subject,
		ParentID: cfg.CategoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: i.GuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
			{ID: opener.ID, Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel},
			{ID: cfg.StaffRoleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionViewChannel},
		},
	})
	if err != nil {
		c.Log.Error("Failed to create ticket channel", "error", err, "guildID", i.GuildID)
		editResponse(s, i, "❌ Failed to create the ticket channel.")
		return
	}

	if err := c.Store.CreateTicketRecord(ch.ID, i.GuildID, opener.ID, subject); err != nil {
		c.Log.Error("Failed to record ticket", "error", err, "channelID", ch.ID)
	}

	s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s> <@&%s>", opener.ID, cfg.StaffRoleID),
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("🎫 #%04d: %s", counter, subject),
			Description: fmt.Sprintf("**Opened by:** <@%s>\n\n```\n%s\n```", opener.ID, details),
			Color:       0x5865f2,
			Footer:      &discordgo.MessageEmbedFooter{Text: "A staff member will be with you shortly."},
		}},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Close", Style: discordgo.DangerButton, CustomID: TicketCloseButtonID, Emoji: &discordgo.ComponentEmoji{Name: "🔒"}},
		}}},
	})

	editResponse(s, i, fmt.Sprintf("✅ Ticket created: <#%s>", ch.ID))
}

// closeTicket は起票者の書き込みを止めてチャンネルを closed- に改名します。
func (c *TicketPanelCommand) closeTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := deferEphemeral(s, i); err != nil {
		return
	}

	ch, err := s.Channel(i.ChannelID)
	if err != nil {
		editResponse(s, i, "❌ Failed to close the ticket.")
		return
	}
	if !strings.HasPrefix(ch.Name, "ticket-") {
		editResponse(s, i, "❌ This is not an open ticket channel.")
		return
	}

	name := "closed-" + strings.TrimPrefix(ch.Name, "ticket-")
	if _, err := s.ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{Name: name}); err != nil {
		c.Log.Error("Failed to rename ticket channel", "error", err, "channelID", i.ChannelID)
		editResponse(s, i, "❌ Failed to close the ticket.")
		return
	}

	// 起票者は閲覧のみ残して書き込みを止める
	if openerID, err := c.Store.GetTicketOpener(i.ChannelID); err == nil {
		if err := s.ChannelPermissionSet(i.ChannelID, openerID, discordgo.PermissionOverwriteTypeMember,
			discordgo.PermissionViewChannel, discordgo.PermissionSendMessages); err != nil {
			c.Log.Warn("Failed to lock ticket channel", "error", err, "channelID", i.ChannelID)
		}
	}

	if err := c.Store.CloseTicketRecord(i.ChannelID); err != nil {
		c.Log.Error("Failed to mark ticket closed", "error", err, "channelID", i.ChannelID)
	}

	s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Description: fmt.Sprintf("🔒 Ticket closed by <@%s>.", i.Member.User.ID),
			Color:       0xfee75c,
		}},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Delete ticket", Style: discordgo.DangerButton, CustomID: TicketDeleteButtonID, Emoji: &discordgo.ComponentEmoji{Name: "🗑️"}},
		}}},
	})

	editResponse(s, i, "✅ Ticket closed.")
}

func (c *TicketPanelCommand) deleteTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i, "🗑️ Deleting this channel...")
	if _, err := s.ChannelDelete(i.ChannelID); err != nil {
		c.Log.Error("Failed to delete ticket channel", "error", err, "channelID", i.ChannelID)
	}
}

// sanitizeChannelName はチャンネル名に使えない文字を落とします。
func sanitizeChannelName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

func (c *TicketPanelCommand) GetComponentIDs() []string {
	return []string{TicketOpenButtonID, TicketModalID, TicketCloseButtonID, TicketDeleteButtonID}
}

func (c *TicketPanelCommand) GetCategory() string { return CategoryTickets }
