package storage

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// User はギルドごとのユーザーデータ (XP・レベル・残高) です。
type User struct {
	GuildID   string
	UserID    string
	XP        int
	Level     int
	Balance   int64
	LastDaily sql.NullTime
	LastWork  sql.NullTime
}

// ErrInsufficientFunds は残高不足を示します。
var ErrInsufficientFunds = fmt.Errorf("残高が不足しています")

// LevelFromXP は累計XPから現在のレベルを求めます。
// レベルnに必要な累計XPは 100*n*n です。
func LevelFromXP(xp int) int {
	if xp <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(xp) / 100))
}

// XPForLevel はレベルnに到達するのに必要な累計XPを返します。
func XPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return 100 * level * level
}

// GetUser はユーザーデータを取得します。存在しない場合は初期値で作成します。
func (s *DBStore) GetUser(guildID, userID string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getUserLocked(guildID, userID)
}

func (s *DBStore) getUserLocked(guildID, userID string) (*User, error) {
	u := &User{GuildID: guildID, UserID: userID}
	err := s.db.QueryRow(
		"SELECT xp, level, balance, last_daily, last_work FROM users WHERE guild_id = ? AND user_id = ?",
		guildID, userID).Scan(&u.XP, &u.Level, &u.Balance, &u.LastDaily, &u.LastWork)
	if err != nil {
		if err == sql.ErrNoRows {
			u.Balance = 1000
			if _, err := s.db.Exec(
				"INSERT INTO users (guild_id, user_id) VALUES (?, ?)", guildID, userID); err != nil {
				return nil, err
			}
			return u, nil
		}
		return nil, err
	}
	return u, nil
}

// AddXP はXPを加算し、更新後のユーザーデータを返します。
func (s *DBStore) AddXP(guildID, userID string, amount int) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getUserLocked(guildID, userID); err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(
		"UPDATE users SET xp = xp + ? WHERE guild_id = ? AND user_id = ?",
		amount, guildID, userID); err != nil {
		return nil, err
	}
	return s.getUserLocked(guildID, userID)
}

// XPAward は一括加算するXPの1件分です。ChannelID はレベルアップ通知先として持ち回ります。
type XPAward struct {
	GuildID   string
	UserID    string
	Amount    int
	ChannelID string
}

// LevelUp は一括XP加算で発生したレベルアップです。
type LevelUp struct {
	GuildID   string
	UserID    string
	ChannelID string
	Level     int
}

// AddXPBatch は複数ユーザーのXPを単一トランザクションで加算します。
// level列も合わせて更新し、レベルが上がった分を返します。
func (s *DBStore) AddXPBatch(awards []XPAward) ([]LevelUp, error) {
	if len(awards) == 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var ups []LevelUp
	for _, a := range awards {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO users (guild_id, user_id) VALUES (?, ?)",
			a.GuildID, a.UserID); err != nil {
			return nil, err
		}
		var xp, level int
		if err := tx.QueryRow(
			"SELECT xp, level FROM users WHERE guild_id = ? AND user_id = ?",
			a.GuildID, a.UserID).Scan(&xp, &level); err != nil {
			return nil, err
		}
		xp += a.Amount
		newLevel := LevelFromXP(xp)
		if _, err := tx.Exec(
			"UPDATE users SET xp = ?, level = ? WHERE guild_id = ? AND user_id = ?",
			xp, newLevel, a.GuildID, a.UserID); err != nil {
			return nil, err
		}
		if newLevel > level {
			ups = append(ups, LevelUp{GuildID: a.GuildID, UserID: a.UserID, ChannelID: a.ChannelID, Level: newLevel})
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ups, nil
}

func (s *DBStore) SetLevel(guildID, userID string, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"UPDATE users SET level = ? WHERE guild_id = ? AND user_id = ?",
		level, guildID, userID)
	return err
}

// AddBalance は残高を加算し、新しい残高を返します。
func (s *DBStore) AddBalance(guildID, userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getUserLocked(guildID, userID); err != nil {
		return 0, err
	}
	if _, err := s.db.Exec(
		"UPDATE users SET balance = balance + ? WHERE guild_id = ? AND user_id = ?",
		amount, guildID, userID); err != nil {
		return 0, err
	}
	var balance int64
	err := s.db.QueryRow(
		"SELECT balance FROM users WHERE guild_id = ? AND user_id = ?",
		guildID, userID).Scan(&balance)
	return balance, err
}

// RemoveBalance は残高を減算します。残高不足の場合は ErrInsufficientFunds を返します。
func (s *DBStore) RemoveBalance(guildID, userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.getUserLocked(guildID, userID)
	if err != nil {
		return 0, err
	}
	if u.Balance < amount {
		return u.Balance, ErrInsufficientFunds
	}
	if _, err := s.db.Exec(
		"UPDATE users SET balance = balance - ? WHERE guild_id = ? AND user_id = ?",
		amount, guildID, userID); err != nil {
		return 0, err
	}
	return u.Balance - amount, nil
}

// TransferBalance は単一トランザクションで残高を送金します。
func (s *DBStore) TransferBalance(guildID, fromID, toID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getUserLocked(guildID, fromID); err != nil {
		return err
	}
	if _, err := s.getUserLocked(guildID, toID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var balance int64
	if err := tx.QueryRow(
		"SELECT balance FROM users WHERE guild_id = ? AND user_id = ?",
		guildID, fromID).Scan(&balance); err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientFunds
	}
	if _, err := tx.Exec(
		"UPDATE users SET balance = balance - ? WHERE guild_id = ? AND user_id = ?",
		amount, guildID, fromID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"UPDATE users SET balance = balance + ? WHERE guild_id = ? AND user_id = ?",
		amount, guildID, toID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *DBStore) GetXPLeaderboard(guildID string, limit int) ([]User, error) {
	return s.queryUsers(
		"SELECT user_id, xp, level, balance FROM users WHERE guild_id = ? ORDER BY xp DESC LIMIT ?",
		guildID, limit)
}

func (s *DBStore) GetBalanceLeaderboard(guildID string, limit int) ([]User, error) {
	return s.queryUsers(
		"SELECT user_id, xp, level, balance FROM users WHERE guild_id = ? ORDER BY balance DESC LIMIT ?",
		guildID, limit)
}

func (s *DBStore) queryUsers(query, guildID string, limit int) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u := User{GuildID: guildID}
		if err := rows.Scan(&u.UserID, &u.XP, &u.Level, &u.Balance); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *DBStore) SetLastDaily(guildID, userID string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"UPDATE users SET last_daily = ? WHERE guild_id = ? AND user_id = ?",
		t, guildID, userID)
	return err
}

func (s *DBStore) SetLastWork(guildID, userID string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"UPDATE users SET last_work = ? WHERE guild_id = ? AND user_id = ?",
		t, guildID, userID)
	return err
}
