package storage

import "database/sql"

// SocialFeed は新着投稿を通知するフィードの購読です。
type SocialFeed struct {
	ID         int64
	GuildID    string
	FeedURL    string
	ChannelID  string
	LastItemID string
}

func (s *DBStore) AddSocialFeed(guildID, feedURL, channelID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO social_feeds (guild_id, feed_url, channel_id) VALUES (?, ?, ?)",
		guildID, feedURL, channelID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RemoveSocialFeed は購読を削除します。該当IDがない場合は sql.ErrNoRows を返します。
func (s *DBStore) RemoveSocialFeed(guildID string, feedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM social_feeds WHERE guild_id = ? AND id = ?", guildID, feedID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *DBStore) ListSocialFeeds(guildID string) ([]SocialFeed, error) {
	return s.querySocialFeeds("SELECT id, guild_id, feed_url, channel_id, last_item_id FROM social_feeds WHERE guild_id = ?", guildID)
}

func (s *DBStore) GetAllSocialFeeds() ([]SocialFeed, error) {
	return s.querySocialFeeds("SELECT id, guild_id, feed_url, channel_id, last_item_id FROM social_feeds")
}

func (s *DBStore) querySocialFeeds(query string, args ...interface{}) ([]SocialFeed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feeds []SocialFeed
	for rows.Next() {
		var f SocialFeed
		if err := rows.Scan(&f.ID, &f.GuildID, &f.FeedURL, &f.ChannelID, &f.LastItemID); err != nil {
			return nil, err
		}
		feeds = append(feeds, f)
	}
	return feeds, rows.Err()
}

func (s *DBStore) SetSocialFeedLastItem(feedID int64, lastItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("UPDATE social_feeds SET last_item_id = ? WHERE id = ?", lastItemID, feedID)
	return err
}
