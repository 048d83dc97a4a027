package events

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// RoleHandler はロールの作成・更新・削除をログに残します。
// discordgoのStateはハンドラ呼び出し前に更新済みで変更前の名前が取れないため、
// 名前は自前のマップで追跡します。
type RoleHandler struct {
	Log   interfaces.Logger
	Store interfaces.DataStore

	mu    sync.Mutex
	names map[string]string
}

func NewRoleHandler(log interfaces.Logger, store interfaces.DataStore) *RoleHandler {
	return &RoleHandler{Log: log, Store: store, names: make(map[string]string)}
}

func (h *RoleHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onGuildCreate)
	s.AddHandler(h.onRoleCreate)
	s.AddHandler(h.onRoleUpdate)
	s.AddHandler(h.onRoleDelete)
}

func (h *RoleHandler) onGuildCreate(s *discordgo.Session, e *discordgo.GuildCreate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, role := range e.Roles {
		h.names[role.ID] = role.Name
	}
}

// rememberName は直前の名前を返しつつ新しい名前を控えます。
func (h *RoleHandler) rememberName(roleID, name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	before := h.names[roleID]
	h.names[roleID] = name
	return before
}

func (h *RoleHandler) onRoleCreate(s *discordgo.Session, e *discordgo.GuildRoleCreate) {
	h.rememberName(e.Role.ID, e.Role.Name)

	embed := &discordgo.MessageEmbed{
		Title: "✨ Role Created",
		Color: ColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: fmt.Sprintf("<@&%s> (%s)", e.Role.ID, e.Role.Name), Inline: true},
			{Name: "Created By", Value: ExecutorMention(s, e.GuildID, e.Role.ID, discordgo.AuditLogActionRoleCreate), Inline: true},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *RoleHandler) onRoleUpdate(s *discordgo.Session, e *discordgo.GuildRoleUpdate) {
	before := h.rememberName(e.Role.ID, e.Role.Name)
	// 名前の変更だけを扱う
	if before == "" || before == e.Role.Name {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "✏️ Role Renamed",
		Color: ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: fmt.Sprintf("<@&%s>", e.Role.ID), Inline: true},
			{Name: "Updated By", Value: ExecutorMention(s, e.GuildID, e.Role.ID, discordgo.AuditLogActionRoleUpdate), Inline: true},
			{Name: "Before", Value: before, Inline: false},
			{Name: "After", Value: e.Role.Name, Inline: false},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *RoleHandler) onRoleDelete(s *discordgo.Session, e *discordgo.GuildRoleDelete) {
	h.mu.Lock()
	name := h.names[e.RoleID]
	delete(h.names, e.RoleID)
	h.mu.Unlock()

	value := e.RoleID
	if name != "" {
		value = fmt.Sprintf("%s (%s)", name, e.RoleID)
	}
	embed := &discordgo.MessageEmbed{
		Title: "🗑️ Role Deleted",
		Color: ColorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Role", Value: value, Inline: true},
			{Name: "Deleted By", Value: ExecutorMention(s, e.GuildID, e.RoleID, discordgo.AuditLogActionRoleDelete), Inline: true},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}
