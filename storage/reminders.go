package storage

import "time"

// Reminder は remind コマンドで登録された通知です。
type Reminder struct {
	ID        int64
	GuildID   string
	ChannelID string
	UserID    string
	Message   string
	RemindAt  time.Time
}

func (s *DBStore) CreateReminder(guildID, channelID, userID, message string, remindAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO reminders (guild_id, channel_id, user_id, message, remind_at) VALUES (?, ?, ?, ?, ?)",
		guildID, channelID, userID, message, remindAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *DBStore) GetDueReminders(now time.Time) ([]Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, guild_id, channel_id, user_id, message, remind_at FROM reminders WHERE done = 0 AND remind_at <= ?",
		now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.GuildID, &r.ChannelID, &r.UserID, &r.Message, &r.RemindAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *DBStore) CompleteReminder(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("UPDATE reminders SET done = 1 WHERE id = ?", id)
	return err
}
