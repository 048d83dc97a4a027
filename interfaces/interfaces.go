package interfaces

import (
	"context"
	"time"

	"logiq/storage"

	"github.com/robfig/cron/v3"
)

// Logger は、アプリケーション全体で使用されるロガーのインターフェースを定義します。
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// DataStore は、ボットが依存するデータベース操作のインターフェースを定義します。
type DataStore interface {
	Close()
	PingDB() error

	// ギルドごとの機能設定 (JSONブロブ)
	GetConfig(guildID, configName string, out interface{}) error
	SaveConfig(guildID, configName string, in interface{}) error

	// ギルド設定 (プレフィックス・モジュール)
	GetGuildSettings(guildID string) (*storage.GuildSettings, error)
	SetGuildPrefix(guildID, prefix string) error
	SetModuleDisabled(guildID, module string, disabled bool) error

	// ユーザー (レベル・経済)
	GetUser(guildID, userID string) (*storage.User, error)
	AddXP(guildID, userID string, amount int) (*storage.User, error)
	AddXPBatch(awards []storage.XPAward) ([]storage.LevelUp, error)
	SetLevel(guildID, userID string, level int) error
	AddBalance(guildID, userID string, amount int64) (int64, error)
	RemoveBalance(guildID, userID string, amount int64) (int64, error)
	TransferBalance(guildID, fromID, toID string, amount int64) error
	GetXPLeaderboard(guildID string, limit int) ([]storage.User, error)
	GetBalanceLeaderboard(guildID string, limit int) ([]storage.User, error)
	SetLastDaily(guildID, userID string, t time.Time) error
	SetLastWork(guildID, userID string, t time.Time) error

	// 警告
	AddWarning(guildID, userID, moderatorID, reason string) (int, error)
	GetWarnings(guildID, userID string) ([]storage.Warning, error)
	RemoveWarning(guildID string, warningID int64) error

	// チケット
	GetNextTicketCounter(guildID string) (int, error)
	CreateTicketRecord(channelID, guildID, userID, subject string) error
	CloseTicketRecord(channelID string) error
	GetTicketOpener(channelID string) (string, error)

	// 分析イベント
	LogEvent(guildID, eventType, userID, data string) error
	CountEvents(guildID, eventType string, since time.Time) (int, error)
	CountAllEvents(eventType string, since time.Time) (int, error)
	TopCommands(guildID string, since time.Time, limit int) ([]storage.CommandCount, error)
	IncrementCommandUsage(category string) error
	GetCommandUsage() (map[string]int, error)

	// リマインダー
	CreateReminder(guildID, channelID, userID, message string, remindAt time.Time) (int64, error)
	GetDueReminders(now time.Time) ([]storage.Reminder, error)
	CompleteReminder(id int64) error

	// ショップ
	GetShopItems(guildID string) ([]storage.ShopItem, error)
	CreateShopItem(guildID, name string, price int64, description string) (int64, error)
	RemoveShopItem(guildID string, itemID int64) error
	PurchaseItem(guildID, userID string, itemID int64) (*storage.ShopItem, error)
	GetInventory(guildID, userID string) ([]storage.InventoryItem, error)

	// ギブアウェイ
	CreateGiveaway(g *storage.Giveaway) error
	GetGiveaway(messageID string) (*storage.Giveaway, error)
	AddGiveawayEntry(messageID, userID string) error
	RemoveGiveawayEntry(messageID, userID string) error
	HasGiveawayEntry(messageID, userID string) (bool, error)
	CountGiveawayEntries(messageID string) (int, error)
	GetGiveawayEntries(messageID string) ([]string, error)
	GetDueGiveaways(now time.Time) ([]storage.Giveaway, error)
	GetActiveGiveaways(guildID string) ([]storage.Giveaway, error)
	EndGiveaway(messageID string) error

	// リアクションロール
	SetReactionRole(guildID, messageID, emoji, roleID string) error
	GetReactionRole(guildID, messageID, emoji string) (*storage.ReactionRole, error)
	DeleteReactionRole(guildID, messageID, emoji string) error

	// ソーシャルフィード
	AddSocialFeed(guildID, feedURL, channelID string) (int64, error)
	RemoveSocialFeed(guildID string, feedID int64) error
	ListSocialFeeds(guildID string) ([]storage.SocialFeed, error)
	GetAllSocialFeeds() ([]storage.SocialFeed, error)
	SetSocialFeedLastItem(feedID int64, lastItemID string) error

	// メッセージキャッシュ (編集・削除ログ用)
	CreateMessageCache(messageID, content, authorID string) error
	GetMessageCache(messageID string) (*storage.CachedMessage, error)
}

// Scheduler は、タスクのスケジューリング機能のインターフェースを定義します。
type Scheduler interface {
	Start()
	Stop() context.Context
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
}
