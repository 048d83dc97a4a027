package storage

import "time"

// よく使う分析イベント種別。
const (
	EventCommandUsed = "command_used"
	EventMemberJoin  = "member_join"
	EventMemberLeave = "member_leave"
	EventMessage     = "message"
)

// CommandCount はコマンド名ごとの実行回数です。
type CommandCount struct {
	Name  string
	Count int
}

func (s *DBStore) LogEvent(guildID, eventType, userID, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO analytics (guild_id, event_type, user_id, data) VALUES (?, ?, ?, ?)",
		guildID, eventType, userID, data)
	return err
}

func (s *DBStore) CountEvents(guildID, eventType string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM analytics WHERE guild_id = ? AND event_type = ? AND created_at >= ?",
		guildID, eventType, since).Scan(&count)
	return count, err
}

// CountAllEvents は全ギルドを横断してイベント数を数えます。
func (s *DBStore) CountAllEvents(eventType string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM analytics WHERE event_type = ? AND created_at >= ?",
		eventType, since).Scan(&count)
	return count, err
}

// TopCommands は期間内で実行回数の多いコマンドを返します。
// dataカラムにはコマンド名が記録されています。
func (s *DBStore) TopCommands(guildID string, since time.Time, limit int) ([]CommandCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT data, COUNT(*) AS c FROM analytics
		 WHERE guild_id = ? AND event_type = ? AND created_at >= ?
		 GROUP BY data ORDER BY c DESC LIMIT ?`,
		guildID, EventCommandUsed, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CommandCount
	for rows.Next() {
		var cc CommandCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}

// IncrementCommandUsage はカテゴリごとの累計実行回数を加算します。
func (s *DBStore) IncrementCommandUsage(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO command_usage (category, count) VALUES (?, 1)
		 ON CONFLICT(category) DO UPDATE SET count = count + 1`,
		category)
	return err
}

func (s *DBStore) GetCommandUsage() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT category, count FROM command_usage")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		usage[category] = count
	}
	return usage, rows.Err()
}
