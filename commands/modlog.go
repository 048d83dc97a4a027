package commands

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// sendModLog は設定済みの監査ログチャンネルへ埋め込みを送ります。
// 未設定なら何もしません。
func sendModLog(s *discordgo.Session, store interfaces.DataStore, guildID string, embed *discordgo.MessageEmbed) {
	var cfg storage.LogConfig
	if err := store.GetConfig(guildID, "log_config", &cfg); err != nil || cfg.ChannelID == "" {
		return
	}
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().Format(time.RFC3339)
	}
	s.ChannelMessageSendEmbed(cfg.ChannelID, embed)
}
