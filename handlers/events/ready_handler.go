package events

import (
	"github.com/bwmarrin/discordgo"

	"logiq/config"
	"logiq/interfaces"
)

// ReadyHandler は起動完了時のログ出力とプレゼンス設定を行います。
type ReadyHandler struct {
	Log interfaces.Logger
}

func NewReadyHandler(log interfaces.Logger) *ReadyHandler {
	return &ReadyHandler{Log: log}
}

func (h *ReadyHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onReady)
}

func (h *ReadyHandler) onReady(s *discordgo.Session, r *discordgo.Ready) {
	h.Log.Info("Bot is ready", "user", r.User.String(), "guilds", len(r.Guilds))

	activity := config.Cfg.Bot.Activity
	if activity == "" {
		activity = "/help | Logiq"
	}
	err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: config.Cfg.Bot.Status,
		Activities: []*discordgo.Activity{{
			Name: activity,
			Type: discordgo.ActivityTypeGame,
		}},
	})
	if err != nil {
		h.Log.Warn("Failed to set presence", "error", err)
	}
}
