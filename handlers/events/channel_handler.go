package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// ChannelHandler はチャンネルの作成・更新・削除をログに残します。
type ChannelHandler struct {
	Log   interfaces.Logger
	Store interfaces.DataStore
}

func NewChannelHandler(log interfaces.Logger, store interfaces.DataStore) *ChannelHandler {
	return &ChannelHandler{Log: log, Store: store}
}

func (h *ChannelHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onChannelCreate)
	s.AddHandler(h.onChannelUpdate)
	s.AddHandler(h.onChannelDelete)
}

func (h *ChannelHandler) onChannelCreate(s *discordgo.Session, e *discordgo.ChannelCreate) {
	if e.GuildID == "" {
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "📬 Channel Created",
		Color: ColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Channel", Value: fmt.Sprintf("<#%s> (%s)", e.ID, e.Name), Inline: true},
			{Name: "Type", Value: ChannelTypeToString(e.Type), Inline: true},
			{Name: "Created By", Value: ExecutorMention(s, e.GuildID, e.ID, discordgo.AuditLogActionChannelCreate), Inline: true},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *ChannelHandler) onChannelUpdate(s *discordgo.Session, e *discordgo.ChannelUpdate) {
	if e.GuildID == "" || e.BeforeUpdate == nil {
		return
	}
	// 名前の変更だけを扱う。権限やトピックの細かな変更まで追うとログが埋まる。
	if e.BeforeUpdate.Name == e.Name {
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "✏️ Channel Renamed",
		Color: ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Channel", Value: fmt.Sprintf("<#%s>", e.ID), Inline: true},
			{Name: "Updated By", Value: ExecutorMention(s, e.GuildID, e.ID, discordgo.AuditLogActionChannelUpdate), Inline: true},
			{Name: "Before", Value: e.BeforeUpdate.Name, Inline: false},
			{Name: "After", Value: e.Name, Inline: false},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *ChannelHandler) onChannelDelete(s *discordgo.Session, e *discordgo.ChannelDelete) {
	if e.GuildID == "" {
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "🗑️ Channel Deleted",
		Color: ColorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Name", Value: e.Name, Inline: true},
			{Name: "Type", Value: ChannelTypeToString(e.Type), Inline: true},
			{Name: "Deleted By", Value: ExecutorMention(s, e.GuildID, e.ID, discordgo.AuditLogActionChannelDelete), Inline: true},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}
