package storage

import (
	"database/sql"
	"encoding/json"
	"slices"
)

// GuildSettings はギルドごとのコマンド設定です。
// Prefixが空の場合は config.yaml の既定プレフィックスを使います。
type GuildSettings struct {
	GuildID         string
	Prefix          string
	DisabledModules []string
}

// ModuleDisabled は指定モジュール (カテゴリ名) が無効化されているかを返します。
func (g *GuildSettings) ModuleDisabled(module string) bool {
	return slices.Contains(g.DisabledModules, module)
}

func (s *DBStore) GetGuildSettings(guildID string) (*GuildSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := &GuildSettings{GuildID: guildID}
	var modulesJSON string
	err := s.db.QueryRow(
		"SELECT prefix, disabled_modules FROM guilds WHERE guild_id = ?",
		guildID).Scan(&settings.Prefix, &modulesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return settings, nil
		}
		return nil, err
	}
	if modulesJSON != "" {
		if err := json.Unmarshal([]byte(modulesJSON), &settings.DisabledModules); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (s *DBStore) SetGuildPrefix(guildID, prefix string) error {
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
	if _, err = tx.Exec("UPDATE guilds SET prefix = ? WHERE guild_id = ?", prefix, guildID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *DBStore) SetModuleDisabled(guildID, module string, disabled bool) error {
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

	var modulesJSON string
	if err = tx.QueryRow("SELECT disabled_modules FROM guilds WHERE guild_id = ?", guildID).Scan(&modulesJSON); err != nil {
		return err
	}
	var modules []string
	if modulesJSON != "" {
		if err := json.Unmarshal([]byte(modulesJSON), &modules); err != nil {
			return err
		}
	}

	if disabled {
		if !slices.Contains(modules, module) {
			modules = append(modules, module)
		}
	} else {
		modules = slices.DeleteFunc(modules, func(m string) bool { return m == module })
	}

	data, err := json.Marshal(modules)
	if err != nil {
		return err
	}
	if _, err = tx.Exec("UPDATE guilds SET disabled_modules = ? WHERE guild_id = ?", string(data), guildID); err != nil {
		return err
	}
	return tx.Commit()
}
