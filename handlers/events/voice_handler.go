package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// VoiceHandler は一時ボイスチャンネルの作成と後片付けを扱います。
type VoiceHandler struct {
	Log   interfaces.Logger
	Store interfaces.DataStore
}

func NewVoiceHandler(log interfaces.Logger, store interfaces.DataStore) *VoiceHandler {
	return &VoiceHandler{Log: log, Store: store}
}

func (h *VoiceHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onVoiceStateUpdate)
}

func (h *VoiceHandler) onVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	var cfg storage.TempVCConfig
	if err := h.Store.GetConfig(e.GuildID, "temp_vc_config", &cfg); err != nil || cfg.LobbyID == "" {
		return
	}

	if e.ChannelID == cfg.LobbyID {
		h.createTempRoom(s, e, cfg)
	}
	h.cleanupTempRoom(s, e, cfg)
}

// createTempRoom はロビーに入ったメンバー専用のボイスチャンネルを作って移動させます。
func (h *VoiceHandler) createTempRoom(s *discordgo.Session, e *discordgo.VoiceStateUpdate, cfg storage.TempVCConfig) {
	member, err := s.State.Member(e.GuildID, e.UserID)
	if err != nil {
		if member, err = s.GuildMember(e.GuildID, e.UserID); err != nil {
			h.Log.Warn("Failed to resolve member for temp VC", "error", err, "userID", e.UserID)
			return
		}
	}

	room, err := s.GuildChannelCreateComplex(e.GuildID, discordgo.GuildChannelCreateData{
		Name:     fmt.Sprintf("%s's room", member.User.Username),
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: cfg.CategoryID,
	})
	if err != nil {
		h.Log.Error("Failed to create temp VC", "error", err, "guildID", e.GuildID)
		return
	}
	if err := s.GuildMemberMove(e.GuildID, e.UserID, &room.ID); err != nil {
		h.Log.Error("Failed to move member into temp VC", "error", err, "userID", e.UserID, "channelID", room.ID)
	}
}

// cleanupTempRoom は誰もいなくなった一時チャンネルを削除します。
func (h *VoiceHandler) cleanupTempRoom(s *discordgo.Session, e *discordgo.VoiceStateUpdate, cfg storage.TempVCConfig) {
	if e.BeforeUpdate == nil || e.BeforeUpdate.ChannelID == "" || e.BeforeUpdate.ChannelID == cfg.LobbyID {
		return
	}
	room, err := s.Channel(e.BeforeUpdate.ChannelID)
	if err != nil || room.ParentID != cfg.CategoryID {
		return
	}

	guild, err := s.State.Guild(e.GuildID)
	if err != nil {
		return
	}
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == room.ID {
			return
		}
	}

	if _, err := s.ChannelDelete(room.ID); err != nil {
		h.Log.Error("Failed to delete empty temp VC", "error", err, "channelID", room.ID)
	}
}
