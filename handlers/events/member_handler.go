package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// MemberHandler はメンバーの参加・退出・タイムアウト・BANを扱います。
type MemberHandler struct {
	Log   interfaces.Logger
	Store interfaces.DataStore
}

func NewMemberHandler(log interfaces.Logger, store interfaces.DataStore) *MemberHandler {
	return &MemberHandler{Log: log, Store: store}
}

func (h *MemberHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onGuildMemberAdd)
	s.AddHandler(h.onGuildMemberRemove)
	s.AddHandler(h.onGuildMemberUpdate)
	s.AddHandler(h.onGuildBanAdd)
	s.AddHandler(h.onGuildBanRemove)
}

// expandWelcome はウェルカムメッセージの {user} と {server} を展開します。
func expandWelcome(template, userMention, guildName string) string {
	return strings.NewReplacer("{user}", userMention, "{server}", guildName).Replace(template)
}

func (h *MemberHandler) onGuildMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	if e.User == nil {
		return
	}
	if err := h.Store.LogEvent(e.GuildID, storage.EventMemberJoin, e.User.ID, ""); err != nil {
		h.Log.Debug("Failed to record member join event", "error", err, "guildID", e.GuildID)
	}

	h.applyAutoRole(s, e)
	h.sendWelcome(s, e)

	createdAt, _ := discordgo.SnowflakeTimestamp(e.User.ID)
	embed := &discordgo.MessageEmbed{
		Title: "📥 Member Joined",
		Author: &discordgo.MessageEmbedAuthor{
			Name:    e.User.String(),
			IconURL: e.User.AvatarURL(""),
		},
		Description: fmt.Sprintf("%s joined the server.", e.User.Mention()),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Account Created", Value: fmt.Sprintf("<t:%d:F> (<t:%d:R>)", createdAt.Unix(), createdAt.Unix())},
		},
		Color: ColorGreen,
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *MemberHandler) applyAutoRole(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	var cfg storage.AutoRoleConfig
	if err := h.Store.GetConfig(e.GuildID, "autorole_config", &cfg); err != nil {
		h.Log.Error("Failed to load autorole config", "error", err, "guildID", e.GuildID)
		return
	}
	if !cfg.Enabled || cfg.RoleID == "" {
		return
	}
	if err := s.GuildMemberRoleAdd(e.GuildID, e.User.ID, cfg.RoleID); err != nil {
		h.Log.Error("Failed to grant auto role", "error", err, "guildID", e.GuildID, "userID", e.User.ID, "roleID", cfg.RoleID)
	}
}

func (h *MemberHandler) sendWelcome(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	var cfg storage.WelcomeConfig
	if err := h.Store.GetConfig(e.GuildID, "welcome_config", &cfg); err != nil {
		h.Log.Error("Failed to load welcome config", "error", err, "guildID", e.GuildID)
		return
	}
	if !cfg.Enabled || cfg.ChannelID == "" {
		return
	}

	guildName := "the server"
	if guild, err := s.State.Guild(e.GuildID); err == nil {
		guildName = guild.Name
	}
	message := cfg.Message
	if message == "" {
		message = "Welcome {user} to {server}! 🎉"
	}
	if _, err := s.ChannelMessageSend(cfg.ChannelID, expandWelcome(message, e.User.Mention(), guildName)); err != nil {
		h.Log.Warn("Failed to send welcome message", "error", err, "guildID", e.GuildID, "channelID", cfg.ChannelID)
	}
}

func (h *MemberHandler) onGuildMemberRemove(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
	if e.User == nil {
		return
	}
	if err := h.Store.LogEvent(e.GuildID, storage.EventMemberLeave, e.User.ID, ""); err != nil {
		h.Log.Debug("Failed to record member leave event", "error", err, "guildID", e.GuildID)
	}

	time.Sleep(auditLogSettle)

	// BANによる退出はGuildBanAdd側で記録する
	if findAuditEntry(s, e.GuildID, e.User.ID, discordgo.AuditLogActionMemberBanAdd) != nil {
		return
	}

	if entry := findAuditEntry(s, e.GuildID, e.User.ID, discordgo.AuditLogActionMemberKick); entry != nil {
		reason := entry.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		embed := &discordgo.MessageEmbed{
			Title:  "👢 Member Kicked",
			Color:  ColorOrange,
			Author: &discordgo.MessageEmbedAuthor{Name: e.User.String(), IconURL: e.User.AvatarURL("")},
			Fields: []*discordgo.MessageEmbedField{
				{Name: "User", Value: e.User.String(), Inline: true},
				{Name: "Moderator", Value: fmt.Sprintf("<@%s>", entry.UserID), Inline: true},
				{Name: "Reason", Value: reason, Inline: false},
			},
		}
		SendLog(s, h.Store, h.Log, e.GuildID, embed)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📤 Member Left",
		Color:       ColorGray,
		Author:      &discordgo.MessageEmbedAuthor{Name: e.User.String(), IconURL: e.User.AvatarURL("")},
		Description: fmt.Sprintf("**%s** left the server.", e.User.String()),
	}
	if e.Member != nil && len(e.Member.Roles) > 0 {
		mentions := make([]string, 0, len(e.Member.Roles))
		for _, roleID := range e.Member.Roles {
			mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
		}
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Roles", Value: strings.Join(mentions, " ")},
		}
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *MemberHandler) onGuildMemberUpdate(s *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	if e.User == nil || e.BeforeUpdate == nil {
		return
	}

	timeoutAdded := e.CommunicationDisabledUntil != nil &&
		(e.BeforeUpdate.CommunicationDisabledUntil == nil ||
			e.CommunicationDisabledUntil.After(*e.BeforeUpdate.CommunicationDisabledUntil))
	timeoutRemoved := e.CommunicationDisabledUntil == nil && e.BeforeUpdate.CommunicationDisabledUntil != nil
	if !timeoutAdded && !timeoutRemoved {
		return
	}

	moderator := ExecutorMention(s, e.GuildID, e.User.ID, discordgo.AuditLogActionMemberUpdate)
	if timeoutAdded {
		embed := &discordgo.MessageEmbed{
			Title:  "🔇 Member Timed Out",
			Color:  ColorOrange,
			Author: &discordgo.MessageEmbedAuthor{Name: e.User.String(), IconURL: e.User.AvatarURL("")},
			Fields: []*discordgo.MessageEmbedField{
				{Name: "User", Value: e.User.Mention(), Inline: true},
				{Name: "Moderator", Value: moderator, Inline: true},
				{Name: "Until", Value: fmt.Sprintf("<t:%d:F>", e.CommunicationDisabledUntil.Unix()), Inline: false},
			},
		}
		SendLog(s, h.Store, h.Log, e.GuildID, embed)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:  "🔊 Timeout Removed",
		Color:  ColorTeal,
		Author: &discordgo.MessageEmbedAuthor{Name: e.User.String(), IconURL: e.User.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: e.User.Mention(), Inline: true},
			{Name: "Moderator", Value: moderator, Inline: true},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *MemberHandler) onGuildBanAdd(s *discordgo.Session, e *discordgo.GuildBanAdd) {
	if e.User == nil {
		return
	}

	time.Sleep(auditLogSettle)

	moderator := "Unknown"
	reason := "No reason provided"
	if entry := findAuditEntry(s, e.GuildID, e.User.ID, discordgo.AuditLogActionMemberBanAdd); entry != nil {
		moderator = fmt.Sprintf("<@%s>", entry.UserID)
		if entry.Reason != "" {
			reason = entry.Reason
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:  "🔨 Member Banned",
		Color:  ColorRed,
		Author: &discordgo.MessageEmbedAuthor{Name: e.User.String(), IconURL: e.User.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: e.User.String(), Inline: true},
			{Name: "Moderator", Value: moderator, Inline: true},
			{Name: "Reason", Value: reason, Inline: false},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *MemberHandler) onGuildBanRemove(s *discordgo.Session, e *discordgo.GuildBanRemove) {
	if e.User == nil {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:  "🕊️ Member Unbanned",
		Color:  ColorTeal,
		Author: &discordgo.MessageEmbedAuthor{Name: e.User.String(), IconURL: e.User.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: e.User.String(), Inline: true},
			{Name: "Moderator", Value: ExecutorMention(s, e.GuildID, e.User.ID, discordgo.AuditLogActionMemberBanRemove), Inline: true},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}
