package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// --- 機能設定の構造体 (guildsテーブルのJSONブロブ列に対応) ---

type TicketConfig struct {
	PanelChannelID string `json:"panel_channel_id"`
	CategoryID     string `json:"category_id"`
	StaffRoleID    string `json:"staff_role_id"`
}

type LogConfig struct {
	ChannelID string `json:"channel_id"`
}

type TempVCConfig struct {
	LobbyID    string `json:"lobby_id"`
	CategoryID string `json:"category_id"`
}

type WelcomeConfig struct {
	Enabled   bool   `json:"enabled"`
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
}

type AutoRoleConfig struct {
	Enabled bool   `json:"enabled"`
	RoleID  string `json:"role_id"`
}

type VerificationConfig struct {
	RoleID    string `json:"role_id"`
	ChannelID string `json:"channel_id"`
}

type DashboardConfig struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// CachedMessage はDBに保存するメッセージの構造体です
type CachedMessage struct {
	MessageID string
	Content   string
	AuthorID  string
}

// configColumns は GetConfig/SaveConfig で参照できる列名のホワイトリストです。
var configColumns = map[string]bool{
	"ticket_config":       true,
	"log_config":          true,
	"temp_vc_config":      true,
	"welcome_config":      true,
	"autorole_config":     true,
	"verification_config": true,
	"dashboard_config":    true,
}

// --- DBStore ---

type DBStore struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewDBStore(dataSourceName string) (*DBStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	store := &DBStore{db: db}
	if err = store.initTables(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *DBStore) initTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS guilds (
			guild_id TEXT PRIMARY KEY,
			prefix TEXT NOT NULL DEFAULT '',
			disabled_modules TEXT NOT NULL DEFAULT '[]',
			ticket_config TEXT DEFAULT '{}',
			log_config TEXT DEFAULT '{}',
			temp_vc_config TEXT DEFAULT '{}',
			welcome_config TEXT DEFAULT '{}',
			autorole_config TEXT DEFAULT '{}',
			verification_config TEXT DEFAULT '{}',
			dashboard_config TEXT DEFAULT '{}',
			ticket_counter INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			guild_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			balance INTEGER NOT NULL DEFAULT 1000,
			last_daily DATETIME,
			last_work DATETIME,
			PRIMARY KEY (guild_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS warnings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			moderator_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tickets (
			channel_id TEXT PRIMARY KEY,
			guild_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'open',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS analytics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			user_id TEXT,
			data TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_guild_type_time
			ON analytics (guild_id, event_type, created_at);`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			message TEXT NOT NULL,
			remind_at DATETIME NOT NULL,
			done INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS shop_items (
			item_id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS user_items (
			guild_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			item_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (guild_id, user_id, item_id)
		);`,
		`CREATE TABLE IF NOT EXISTS giveaways (
			message_id TEXT PRIMARY KEY,
			guild_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			prize TEXT NOT NULL,
			winners INTEGER NOT NULL DEFAULT 1,
			ends_at DATETIME NOT NULL,
			ended INTEGER NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS giveaway_entries (
			message_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			PRIMARY KEY (message_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS reaction_roles (
			guild_id TEXT NOT NULL,
			message_id TEXT NOT NULL,
			emoji TEXT NOT NULL,
			role_id TEXT NOT NULL,
			PRIMARY KEY (message_id, emoji)
		);`,
		`CREATE TABLE IF NOT EXISTS social_feeds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			feed_url TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			last_item_id TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS message_cache (
			message_id TEXT PRIMARY KEY,
			content TEXT,
			author_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS command_usage (
			category TEXT PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

func (s *DBStore) Close() {
	s.db.Close()
}

func (s *DBStore) PingDB() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Ping()
}

func (s *DBStore) upsertGuild(tx *sql.Tx, guildID string) error {
	_, err := tx.Exec("INSERT OR IGNORE INTO guilds (guild_id) VALUES (?)", guildID)
	return err
}

// --- 機能設定の取得・保存 ---

func (s *DBStore) GetConfig(guildID, configName string, out interface{}) error {
	if !configColumns[configName] {
		return fmt.Errorf("不明な設定名: %s", configName)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT %s FROM guilds WHERE guild_id = ?", configName)
	var configJSON sql.NullString
	err := s.db.QueryRow(query, guildID).Scan(&configJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			// 行がなければ既定値のまま返す
			return nil
		}
		return err
	}
	if configJSON.Valid && configJSON.String != "" {
		return json.Unmarshal([]byte(configJSON.String), out)
	}
	return nil
}

func (s *DBStore) SaveConfig(guildID, configName string, in interface{}) error {
	if !configColumns[configName] {
		return fmt.Errorf("不明な設定名: %s", configName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.upsertGuild(tx, guildID); err != nil {
		return err
	}
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE guilds SET %s = ? WHERE guild_id = ?", configName)
	if _, err = tx.Exec(query, string(data), guildID); err != nil {
		return err
	}
	return tx.Commit()
}

// --- チケット ---

func (s *DBStore) GetNextTicketCounter(guildID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.upsertGuild(tx, guildID); err != nil {
		return 0, err
	}
	var counter int
	if err = tx.QueryRow("SELECT ticket_counter FROM guilds WHERE guild_id = ?", guildID).Scan(&counter); err != nil {
		return 0, err
	}
	counter++
	if _, err = tx.Exec("UPDATE guilds SET ticket_counter = ? WHERE guild_id = ?", counter, guildID); err != nil {
		return 0, err
	}
	return counter, tx.Commit()
}

func (s *DBStore) CreateTicketRecord(channelID, guildID, userID, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO tickets (channel_id, guild_id, user_id, subject, status) VALUES (?, ?, ?, ?, 'open')",
		channelID, guildID, userID, subject)
	return err
}

func (s *DBStore) CloseTicketRecord(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("UPDATE tickets SET status = 'closed' WHERE channel_id = ?", channelID)
	return err
}

// GetTicketOpener は起票者のユーザーIDを返します。
func (s *DBStore) GetTicketOpener(channelID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var userID string
	err := s.db.QueryRow("SELECT user_id FROM tickets WHERE channel_id = ?", channelID).Scan(&userID)
	return userID, err
}

// --- メッセージキャッシュ ---

func (s *DBStore) CreateMessageCache(messageID, content, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO message_cache (message_id, content, author_id) VALUES (?, ?, ?)",
		messageID, content, authorID)
	return err
}

// GetMessageCache はキャッシュを取得し、同時に削除します。編集・削除ログは一度しか参照しないためです。
func (s *DBStore) GetMessageCache(messageID string) (*CachedMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msg CachedMessage
	err := s.db.QueryRow(
		"SELECT message_id, content, author_id FROM message_cache WHERE message_id = ?",
		messageID).Scan(&msg.MessageID, &msg.Content, &msg.AuthorID)
	if err != nil {
		return nil, err
	}
	if _, err = s.db.Exec("DELETE FROM message_cache WHERE message_id = ?", messageID); err != nil {
		return &msg, nil
	}
	return &msg, nil
}
