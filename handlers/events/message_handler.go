package events

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"logiq/ai"
	"logiq/interfaces"
	"logiq/storage"
)

// chatHistoryLimit は雑談応答の文脈として渡す直近メッセージの件数です。
const chatHistoryLimit = 15

// XPAwarder は発言に対するXP付与の受け口です。
type XPAwarder interface {
	Award(guildID, userID, channelID string)
}

// MessageHandler はメッセージの記録・XP付与・編集/削除ログ・メンション雑談を扱います。
type MessageHandler struct {
	Log   interfaces.Logger
	Store interfaces.DataStore

	ai        *ai.Client
	limiter   *ai.Limiter
	xp        XPAwarder
	isCommand func(guildID, content string) bool
}

// NewMessageHandler を作成します。aiClient と xp は nil でもよく、その場合は該当機能を無効にします。
// isCommand はコマンドとして処理されるメッセージの判定に使います。
func NewMessageHandler(log interfaces.Logger, store interfaces.DataStore, aiClient *ai.Client, xp XPAwarder, isCommand func(guildID, content string) bool) *MessageHandler {
	return &MessageHandler{
		Log:       log,
		Store:     store,
		ai:        aiClient,
		limiter:   ai.NewLimiter(10*time.Second, 3),
		xp:        xp,
		isCommand: isCommand,
	}
}

func (h *MessageHandler) Register(s *discordgo.Session) {
	s.AddHandler(h.onMessageCreate)
	s.AddHandler(h.onMessageUpdate)
	s.AddHandler(h.onMessageDelete)
}

func (h *MessageHandler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if m.Content != "" {
		if err := h.Store.CreateMessageCache(m.ID, m.Content, m.Author.ID); err != nil {
			h.Log.Debug("Failed to cache message", "error", err, "messageID", m.ID)
		}
	}
	if err := h.Store.LogEvent(m.GuildID, storage.EventMessage, m.Author.ID, ""); err != nil {
		h.Log.Debug("Failed to record message event", "error", err, "guildID", m.GuildID)
	}

	// コマンドはディスパッチャ側が処理する。XPも雑談も対象外。
	if h.isCommand != nil && h.isCommand(m.GuildID, m.Content) {
		return
	}

	if h.xp != nil {
		h.xp.Award(m.GuildID, m.Author.ID, m.ChannelID)
	}

	if isBotMentioned(s, m) {
		go h.chatReply(s, m)
	}
}

func isBotMentioned(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if s.State.User == nil {
		return false
	}
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			return true
		}
	}
	return false
}

// stripBotMention はボット宛メンションを取り除いた本文を返します。
func stripBotMention(content, botID string) string {
	replacer := strings.NewReplacer("<@"+botID+">", "", "<@!"+botID+">", "")
	return strings.TrimSpace(replacer.Replace(content))
}

func (h *MessageHandler) chatReply(s *discordgo.Session, m *discordgo.MessageCreate) {
	if h.ai == nil {
		return
	}
	question := stripBotMention(m.Content, s.State.User.ID)
	if question == "" {
		_, _ = s.ChannelMessageSendReply(m.ChannelID, "👋 Mention me with a question, or try `/help`.", m.Reference())
		return
	}
	if !h.limiter.Allow(m.GuildID) {
		_, _ = s.ChannelMessageSendReply(m.ChannelID, "⌛ The assistant is busy right now. Try again in a moment.", m.Reference())
		return
	}

	if err := s.ChannelTyping(m.ChannelID); err != nil {
		h.Log.Debug("Failed to send typing indicator", "error", err, "channelID", m.ChannelID)
	}

	history := h.fetchHistory(s, m)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	answer, err := h.ai.Chat(ctx, history, fmt.Sprintf("%s: %s", m.Author.Username, question))
	if err != nil {
		h.Log.Error("Chat reply failed", "error", err, "guildID", m.GuildID)
		_, _ = s.ChannelMessageSendReply(m.ChannelID, "❌ I couldn't come up with an answer. Try again later.", m.Reference())
		return
	}

	if len(answer) > 1900 {
		answer = answer[:1900]
		for len(answer) > 0 && !utf8.ValidString(answer) {
			answer = answer[:len(answer)-1]
		}
		answer += "…"
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, answer, m.Reference()); err != nil {
		h.Log.Error("Failed to send chat reply", "error", err, "channelID", m.ChannelID)
	}
}

// fetchHistory は現在のメッセージより前の発言を古い順に変換して返します。
func (h *MessageHandler) fetchHistory(s *discordgo.Session, m *discordgo.MessageCreate) []ai.ChatMessage {
	messages, err := s.ChannelMessages(m.ChannelID, chatHistoryLimit, m.ID, "", "")
	if err != nil {
		h.Log.Warn("Failed to fetch chat history", "error", err, "channelID", m.ChannelID)
		return nil
	}

	history := make([]ai.ChatMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Author == nil || msg.Content == "" {
			continue
		}
		history = append(history, ai.ChatMessage{
			Author:  msg.Author.Username,
			Content: msg.Content,
			FromBot: msg.Author.ID == s.State.User.ID,
		})
	}
	return history
}

func (h *MessageHandler) onMessageUpdate(s *discordgo.Session, e *discordgo.MessageUpdate) {
	if e.Author == nil || e.Author.Bot || e.GuildID == "" {
		return
	}
	// 埋め込み展開などの本文を伴わない更新は無視する
	if e.Content == "" {
		return
	}

	link := fmt.Sprintf("[Jump](https://discord.com/channels/%s/%s/%s)", e.GuildID, e.ChannelID, e.ID)
	fields := []*discordgo.MessageEmbedField{
		{Name: "Author", Value: e.Author.Mention(), Inline: true},
		{Name: "Channel", Value: fmt.Sprintf("<#%s>", e.ChannelID), Inline: true},
		{Name: "Message", Value: link, Inline: true},
	}

	title := "✏️ Message Edited"
	cached, err := h.Store.GetMessageCache(e.ID)
	if err == nil && cached != nil {
		if cached.Content == e.Content {
			return
		}
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Before", Value: codeBlock(cached.Content), Inline: false},
			&discordgo.MessageEmbedField{Name: "After", Value: codeBlock(e.Content), Inline: false})
	} else {
		title = "✏️ Message Edited (original unknown)"
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "After", Value: codeBlock(e.Content), Inline: false})
	}

	// 次の編集・削除に備えて新しい本文を控え直す
	if err := h.Store.CreateMessageCache(e.ID, e.Content, e.Author.ID); err != nil {
		h.Log.Debug("Failed to refresh message cache", "error", err, "messageID", e.ID)
	}

	embed := &discordgo.MessageEmbed{
		Title:  title,
		Color:  ColorBlue,
		Author: &discordgo.MessageEmbedAuthor{Name: e.Author.String(), IconURL: e.Author.AvatarURL("")},
		Fields: fields,
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}

func (h *MessageHandler) onMessageDelete(s *discordgo.Session, e *discordgo.MessageDelete) {
	if e.GuildID == "" {
		return
	}

	cached, err := h.Store.GetMessageCache(e.ID)
	if err != nil || cached == nil {
		embed := &discordgo.MessageEmbed{
			Title:       "🗑️ Message Deleted (content unknown)",
			Description: fmt.Sprintf("A message was deleted in <#%s>.", e.ChannelID),
			Color:       ColorGray,
			Fields:      []*discordgo.MessageEmbedField{{Name: "Message ID", Value: e.ID}},
		}
		SendLog(s, h.Store, h.Log, e.GuildID, embed)
		return
	}

	author, err := s.User(cached.AuthorID)
	if err != nil {
		author = &discordgo.User{ID: cached.AuthorID, Username: "Unknown user"}
	}

	deleter := "Unknown"
	if deleterID := GetMessageDeleteExecutor(s, e.GuildID, cached.AuthorID, e.ChannelID); deleterID != "" {
		deleter = fmt.Sprintf("<@%s>", deleterID)
	} else {
		// 監査ログに載らない削除は本人によるもの
		deleter = "The author"
	}

	embed := &discordgo.MessageEmbed{
		Title:  "🗑️ Message Deleted",
		Color:  ColorRed,
		Author: &discordgo.MessageEmbedAuthor{Name: author.String(), IconURL: author.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Author", Value: author.Mention(), Inline: true},
			{Name: "Deleted By", Value: deleter, Inline: true},
			{Name: "Channel", Value: fmt.Sprintf("<#%s>", e.ChannelID), Inline: true},
			{Name: "Content", Value: codeBlock(cached.Content), Inline: false},
		},
	}
	SendLog(s, h.Store, h.Log, e.GuildID, embed)
}
