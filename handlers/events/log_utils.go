package events

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// ログ埋め込みで使う共通カラー。
const (
	ColorBlue   = 0x3498db
	ColorGreen  = 0x2ecc71
	ColorRed    = 0xe74c3c
	ColorOrange = 0xe67e22
	ColorTeal   = 0x1abc9c
	ColorGray   = 0x95a5a6
)

const (
	// auditLogSettle は監査ログへの反映を待つ時間です。
	auditLogSettle = 500 * time.Millisecond
	// auditLogWindow より古いエントリは今回のイベントと無関係とみなします。
	auditLogWindow = 15 * time.Second
)

// SendLog はギルドのログチャンネルに埋め込みを送信します。
// ログチャンネルが未設定のギルドでは何もしません。
func SendLog(s *discordgo.Session, store interfaces.DataStore, log interfaces.Logger, guildID string, embed *discordgo.MessageEmbed) {
	var cfg storage.LogConfig
	if err := store.GetConfig(guildID, "log_config", &cfg); err != nil || cfg.ChannelID == "" {
		return
	}
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().Format(time.RFC3339)
	}
	if embed.Footer == nil {
		if guild, err := s.State.Guild(guildID); err == nil {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: guild.Name}
		}
	}
	if _, err := s.ChannelMessageSendEmbed(cfg.ChannelID, embed); err != nil {
		log.Warn("Failed to send log embed", "error", err, "guildID", guildID, "channelID", cfg.ChannelID)
	}
}

// GetExecutor は監査ログから直近の操作の実行者のユーザーIDを特定します。
// 監査ログへの反映には遅延があるため少し待ってから照会し、
// 古いエントリを誤って拾わないよう発行時刻で絞り込みます。
// 特定できない場合は空文字列を返します。
func GetExecutor(s *discordgo.Session, guildID, targetID string, action discordgo.AuditLogAction) string {
	time.Sleep(auditLogSettle)
	if entry := findAuditEntry(s, guildID, targetID, action); entry != nil {
		return entry.UserID
	}
	return ""
}

// findAuditEntry はtargetIDに対するactionの直近エントリを返します。
// 待ち時間は呼び出し側で取ります。
func findAuditEntry(s *discordgo.Session, guildID, targetID string, action discordgo.AuditLogAction) *discordgo.AuditLogEntry {
	audit, err := s.GuildAuditLog(guildID, "", "", int(action), 10)
	if err != nil {
		return nil
	}
	for _, entry := range audit.AuditLogEntries {
		if entry.TargetID != targetID {
			continue
		}
		ts, err := discordgo.SnowflakeTimestamp(entry.ID)
		if err != nil || time.Since(ts) > auditLogWindow {
			continue
		}
		return entry
	}
	return nil
}

// GetMessageDeleteExecutor はメッセージ削除の実行者を特定します。
// 削除エントリのTargetIDは投稿者なので、チャンネルまで一致させて判定します。
func GetMessageDeleteExecutor(s *discordgo.Session, guildID, authorID, channelID string) string {
	time.Sleep(auditLogSettle)

	audit, err := s.GuildAuditLog(guildID, "", "", int(discordgo.AuditLogActionMessageDelete), 10)
	if err != nil {
		return ""
	}
	for _, entry := range audit.AuditLogEntries {
		if entry.TargetID != authorID {
			continue
		}
		if entry.Options == nil || entry.Options.ChannelID != channelID {
			continue
		}
		ts, err := discordgo.SnowflakeTimestamp(entry.ID)
		if err != nil || time.Since(ts) > auditLogWindow {
			continue
		}
		return entry.UserID
	}
	return ""
}

// ExecutorMention は監査ログの実行者をメンション表記で返します。
// 特定できない場合は "Unknown" を返します。
func ExecutorMention(s *discordgo.Session, guildID, targetID string, action discordgo.AuditLogAction) string {
	if id := GetExecutor(s, guildID, targetID, action); id != "" {
		return fmt.Sprintf("<@%s>", id)
	}
	return "Unknown"
}

// codeBlock は本文をコードブロックに包んで返します。
// フィールド値の上限1024文字に収まるよう長い本文は切り詰めます。
func codeBlock(content string) string {
	const max = 1000
	if len(content) > max {
		content = content[:max]
		for len(content) > 0 && !utf8.ValidString(content) {
			content = content[:len(content)-1]
		}
		content += "…"
	}
	return "```\n" + content + "\n```"
}

// ChannelTypeToString はチャンネル種別の表示名を返します。
func ChannelTypeToString(t discordgo.ChannelType) string {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return "Text channel"
	case discordgo.ChannelTypeGuildVoice:
		return "Voice channel"
	case discordgo.ChannelTypeGuildCategory:
		return "Category"
	case discordgo.ChannelTypeGuildNews:
		return "Announcement channel"
	case discordgo.ChannelTypeGuildStageVoice:
		return "Stage channel"
	case discordgo.ChannelTypeGuildForum:
		return "Forum channel"
	default:
		return "Channel"
	}
}
