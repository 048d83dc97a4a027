package storage

import (
	"database/sql"
	"time"
)

// Giveaway はパネルメッセージのIDをキーとするギブアウェイです。
type Giveaway struct {
	MessageID string
	GuildID   string
	ChannelID string
	Prize     string
	Winners   int
	EndsAt    time.Time
	Ended     bool
	CreatedBy string
}

func (s *DBStore) CreateGiveaway(g *Giveaway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO giveaways (message_id, guild_id, channel_id, prize, winners, ends_at, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		g.MessageID, g.GuildID, g.ChannelID, g.Prize, g.Winners, g.EndsAt, g.CreatedBy)
	return err
}

func (s *DBStore) GetGiveaway(messageID string) (*Giveaway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanGiveaway(s.db.QueryRow(
		"SELECT message_id, guild_id, channel_id, prize, winners, ends_at, ended, created_by FROM giveaways WHERE message_id = ?",
		messageID))
}

func (s *DBStore) scanGiveaway(row *sql.Row) (*Giveaway, error) {
	var g Giveaway
	var ended int
	if err := row.Scan(&g.MessageID, &g.GuildID, &g.ChannelID, &g.Prize, &g.Winners, &g.EndsAt, &ended, &g.CreatedBy); err != nil {
		return nil, err
	}
	g.Ended = ended != 0
	return &g, nil
}

func (s *DBStore) AddGiveawayEntry(messageID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO giveaway_entries (message_id, user_id) VALUES (?, ?)",
		messageID, userID)
	return err
}

func (s *DBStore) RemoveGiveawayEntry(messageID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"DELETE FROM giveaway_entries WHERE message_id = ? AND user_id = ?",
		messageID, userID)
	return err
}

func (s *DBStore) HasGiveawayEntry(messageID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM giveaway_entries WHERE message_id = ? AND user_id = ?",
		messageID, userID).Scan(&n)
	return n > 0, err
}

func (s *DBStore) CountGiveawayEntries(messageID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM giveaway_entries WHERE message_id = ?", messageID).Scan(&n)
	return n, err
}

func (s *DBStore) GetGiveawayEntries(messageID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT user_id FROM giveaway_entries WHERE message_id = ?", messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func (s *DBStore) GetDueGiveaways(now time.Time) ([]Giveaway, error) {
	return s.queryGiveaways(
		"SELECT message_id, guild_id, channel_id, prize, winners, ends_at, ended, created_by FROM giveaways WHERE ended = 0 AND ends_at <= ?",
		now)
}

func (s *DBStore) GetActiveGiveaways(guildID string) ([]Giveaway, error) {
	return s.queryGiveaways(
		"SELECT message_id, guild_id, channel_id, prize, winners, ends_at, ended, created_by FROM giveaways WHERE ended = 0 AND guild_id = ?",
		guildID)
}

func (s *DBStore) queryGiveaways(query string, arg interface{}) ([]Giveaway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var giveaways []Giveaway
	for rows.Next() {
		var g Giveaway
		var ended int
		if err := rows.Scan(&g.MessageID, &g.GuildID, &g.ChannelID, &g.Prize, &g.Winners, &g.EndsAt, &ended, &g.CreatedBy); err != nil {
			return nil, err
		}
		g.Ended = ended != 0
		giveaways = append(giveaways, g)
	}
	return giveaways, rows.Err()
}

func (s *DBStore) EndGiveaway(messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("UPDATE giveaways SET ended = 1 WHERE message_id = ?", messageID)
	return err
}
