package storage

import (
	"database/sql"
	"time"
)

// Warning はモデレーターがユーザーに与えた警告の記録です。
type Warning struct {
	ID          int64
	GuildID     string
	UserID      string
	ModeratorID string
	Reason      string
	CreatedAt   time.Time
}

// AddWarning は警告を記録し、対象ユーザーの現在の警告数を返します。
func (s *DBStore) AddWarning(guildID, userID, moderatorID, reason string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		"INSERT INTO warnings (guild_id, user_id, moderator_id, reason) VALUES (?, ?, ?, ?)",
		guildID, userID, moderatorID, reason); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM warnings WHERE guild_id = ? AND user_id = ?",
		guildID, userID).Scan(&count)
	return count, err
}

func (s *DBStore) GetWarnings(guildID, userID string) ([]Warning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, moderator_id, reason, created_at FROM warnings WHERE guild_id = ? AND user_id = ? ORDER BY created_at DESC",
		guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warnings []Warning
	for rows.Next() {
		w := Warning{GuildID: guildID, UserID: userID}
		if err := rows.Scan(&w.ID, &w.ModeratorID, &w.Reason, &w.CreatedAt); err != nil {
			return nil, err
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

// RemoveWarning は警告を削除します。該当IDがない場合は sql.ErrNoRows を返します。
func (s *DBStore) RemoveWarning(guildID string, warningID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM warnings WHERE guild_id = ? AND id = ?", guildID, warningID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
