package storage

import (
	"database/sql"
	"fmt"
)

// ShopItem はギルドのショップに並ぶアイテムです。
type ShopItem struct {
	ItemID      int64
	GuildID     string
	Name        string
	Price       int64
	Description string
}

// InventoryItem はユーザーが所持しているアイテムです。
type InventoryItem struct {
	Item     ShopItem
	Quantity int
}

// ErrItemNotFound は存在しないショップアイテムへの参照を示します。
var ErrItemNotFound = fmt.Errorf("アイテムが見つかりません")

func (s *DBStore) GetShopItems(guildID string) ([]ShopItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT item_id, name, price, description FROM shop_items WHERE guild_id = ? ORDER BY price ASC",
		guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ShopItem
	for rows.Next() {
		item := ShopItem{GuildID: guildID}
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Price, &item.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *DBStore) CreateShopItem(guildID, name string, price int64, description string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO shop_items (guild_id, name, price, description) VALUES (?, ?, ?, ?)",
		guildID, name, price, description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RemoveShopItem はアイテムを削除します。該当IDがない場合は ErrItemNotFound を返します。
func (s *DBStore) RemoveShopItem(guildID string, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM shop_items WHERE guild_id = ? AND item_id = ?", guildID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// PurchaseItem は残高チェック・引き落とし・在庫加算を単一トランザクションで行います。
func (s *DBStore) PurchaseItem(guildID, userID string, itemID int64) (*ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getUserLocked(guildID, userID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	item := ShopItem{ItemID: itemID, GuildID: guildID}
	err = tx.QueryRow(
		"SELECT name, price, description FROM shop_items WHERE guild_id = ? AND item_id = ?",
		guildID, itemID).Scan(&item.Name, &item.Price, &item.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var balance int64
	if err := tx.QueryRow(
		"SELECT balance FROM users WHERE guild_id = ? AND user_id = ?",
		guildID, userID).Scan(&balance); err != nil {
		return nil, err
	}
	if balance < item.Price {
		return nil, ErrInsufficientFunds
	}

	if _, err := tx.Exec(
		"UPDATE users SET balance = balance - ? WHERE guild_id = ? AND user_id = ?",
		item.Price, guildID, userID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		`INSERT INTO user_items (guild_id, user_id, item_id, quantity) VALUES (?, ?, ?, 1)
		 ON CONFLICT(guild_id, user_id, item_id) DO UPDATE SET quantity = quantity + 1`,
		guildID, userID, itemID); err != nil {
		return nil, err
	}
	return &item, tx.Commit()
}

func (s *DBStore) GetInventory(guildID, userID string) ([]InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT i.item_id, i.name, i.price, i.description, ui.quantity
		 FROM user_items ui JOIN shop_items i ON ui.item_id = i.item_id AND ui.guild_id = i.guild_id
		 WHERE ui.guild_id = ? AND ui.user_id = ? AND ui.quantity > 0`,
		guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventory []InventoryItem
	for rows.Next() {
		inv := InventoryItem{Item: ShopItem{GuildID: guildID}}
		if err := rows.Scan(&inv.Item.ItemID, &inv.Item.Name, &inv.Item.Price, &inv.Item.Description, &inv.Quantity); err != nil {
			return nil, err
		}
		inventory = append(inventory, inv)
	}
	return inventory, rows.Err()
}
