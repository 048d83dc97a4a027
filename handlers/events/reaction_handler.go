package events

import (
	"database/sql"
	"errors"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// ReactionHandler はリアクションロールの付与・剥奪を扱います。
type ReactionHandler struct {
	Log   interfaces.Logger
	Store interfaces.DataStore
}

func NewReactionHandler(log interfaces.Logger, store interfaces.DataStore) *ReactionHandler {
	return &ReactionHandler{Log: log, Store: store}
}

func (h *ReactionHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onReactionAdd)
	s.AddHandler(h.onReactionRemove)
}

func (h *ReactionHandler) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}
	rr, err := h.Store.GetReactionRole(r.GuildID, r.MessageID, r.Emoji.APIName())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.Log.Error("Failed to look up reaction role", "error", err, "guildID", r.GuildID, "messageID", r.MessageID)
		}
		return
	}
	if err := s.GuildMemberRoleAdd(r.GuildID, r.UserID, rr.RoleID); err != nil {
		h.Log.Error("Failed to grant reaction role", "error", err, "userID", r.UserID, "roleID", rr.RoleID)
	}
}

func (h *ReactionHandler) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}
	rr, err := h.Store.GetReactionRole(r.GuildID, r.MessageID, r.Emoji.APIName())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.Log.Error("Failed to look up reaction role", "error", err, "guildID", r.GuildID, "messageID", r.MessageID)
		}
		return
	}
	if err := s.GuildMemberRoleRemove(r.GuildID, r.UserID, rr.RoleID); err != nil {
		h.Log.Error("Failed to revoke reaction role", "error", err, "userID", r.UserID, "roleID", rr.RoleID)
	}
}
