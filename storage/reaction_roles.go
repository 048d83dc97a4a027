package storage

// ReactionRole はメッセージ×絵文字とロールの対応です。
type ReactionRole struct {
	GuildID   string
	MessageID string
	Emoji     string
	RoleID    string
}

func (s *DBStore) SetReactionRole(guildID, messageID, emoji, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO reaction_roles (guild_id, message_id, emoji, role_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(message_id, emoji) DO UPDATE SET role_id = excluded.role_id`,
		guildID, messageID, emoji, roleID)
	return err
}

// GetReactionRole は対応が存在しない場合 sql.ErrNoRows を返します。
func (s *DBStore) GetReactionRole(guildID, messageID, emoji string) (*ReactionRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rr := &ReactionRole{GuildID: guildID, MessageID: messageID, Emoji: emoji}
	err := s.db.QueryRow(
		"SELECT role_id FROM reaction_roles WHERE guild_id = ? AND message_id = ? AND emoji = ?",
		guildID, messageID, emoji).Scan(&rr.RoleID)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *DBStore) DeleteReactionRole(guildID, messageID, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"DELETE FROM reaction_roles WHERE guild_id = ? AND message_id = ? AND emoji = ?",
		guildID, messageID, emoji)
	return err
}
