package storage

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DBStore {
	t.Helper()
	store, err := NewDBStore(":memory:")
	if err != nil {
		t.Fatalf("NewDBStore: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{-5, 0},
		{99, 0},
		{100, 1},
		{399, 1},
		{400, 2},
		{900, 3},
		{10000, 10},
	}
	for _, tt := range tests {
		if got := LevelFromXP(tt.xp); got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 100},
		{2, 400},
		{5, 2500},
	}
	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
	// 閾値とレベル算出の整合性
	for level := 1; level < 50; level++ {
		if got := LevelFromXP(XPForLevel(level)); got != level {
			t.Errorf("LevelFromXP(XPForLevel(%d)) = %d", level, got)
		}
	}
}

func TestUserDefaultsAndXP(t *testing.T) {
	store := newTestStore(t)

	u, err := store.GetUser("g1", "u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Balance != 1000 {
		t.Errorf("initial balance = %d, want 1000", u.Balance)
	}
	if u.XP != 0 || u.Level != 0 {
		t.Errorf("initial xp/level = %d/%d, want 0/0", u.XP, u.Level)
	}

	u, err = store.AddXP("g1", "u1", 150)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if u.XP != 150 {
		t.Errorf("xp after add = %d, want 150", u.XP)
	}

	if err := store.SetLevel("g1", "u1", 1); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	u, _ = store.GetUser("g1", "u1")
	if u.Level != 1 {
		t.Errorf("level = %d, want 1", u.Level)
	}
}

func TestAddXPBatch(t *testing.T) {
	store := newTestStore(t)

	store.AddXP("g1", "u1", 90)
	ups, err := store.AddXPBatch([]XPAward{
		{GuildID: "g1", UserID: "u1", Amount: 20, ChannelID: "c1"},
		{GuildID: "g1", UserID: "u2", Amount: 30, ChannelID: "c2"},
	})
	if err != nil {
		t.Fatalf("AddXPBatch: %v", err)
	}
	// u1は90+20=110でレベル1到達、u2は30のまま
	if len(ups) != 1 {
		t.Fatalf("level ups = %+v, want exactly one", ups)
	}
	if ups[0].UserID != "u1" || ups[0].Level != 1 || ups[0].ChannelID != "c1" {
		t.Errorf("level up = %+v", ups[0])
	}

	u1, _ := store.GetUser("g1", "u1")
	if u1.XP != 110 || u1.Level != 1 {
		t.Errorf("u1 = xp %d level %d, want 110/1", u1.XP, u1.Level)
	}
	u2, _ := store.GetUser("g1", "u2")
	if u2.XP != 30 || u2.Level != 0 {
		t.Errorf("u2 = xp %d level %d, want 30/0", u2.XP, u2.Level)
	}

	// 空のバッチは何もしない
	if ups, err := store.AddXPBatch(nil); err != nil || ups != nil {
		t.Errorf("empty batch = %v, %v", ups, err)
	}
}

func TestBalanceOperations(t *testing.T) {
	store := newTestStore(t)

	balance, err := store.AddBalance("g1", "u1", 500)
	if err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	if balance != 1500 {
		t.Errorf("balance = %d, want 1500", balance)
	}

	balance, err = store.RemoveBalance("g1", "u1", 300)
	if err != nil {
		t.Fatalf("RemoveBalance: %v", err)
	}
	if balance != 1200 {
		t.Errorf("balance = %d, want 1200", balance)
	}

	if _, err := store.RemoveBalance("g1", "u1", 99999); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("RemoveBalance over limit: err = %v, want ErrInsufficientFunds", err)
	}
}

func TestTransferBalance(t *testing.T) {
	store := newTestStore(t)

	if err := store.TransferBalance("g1", "alice", "bob", 400); err != nil {
		t.Fatalf("TransferBalance: %v", err)
	}
	alice, _ := store.GetUser("g1", "alice")
	bob, _ := store.GetUser("g1", "bob")
	if alice.Balance != 600 {
		t.Errorf("sender balance = %d, want 600", alice.Balance)
	}
	if bob.Balance != 1400 {
		t.Errorf("receiver balance = %d, want 1400", bob.Balance)
	}

	if err := store.TransferBalance("g1", "alice", "bob", 99999); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("transfer over limit: err = %v, want ErrInsufficientFunds", err)
	}
	// 失敗した送金は残高を変えない
	alice, _ = store.GetUser("g1", "alice")
	if alice.Balance != 600 {
		t.Errorf("sender balance after failed transfer = %d, want 600", alice.Balance)
	}
}

func TestLeaderboards(t *testing.T) {
	store := newTestStore(t)

	store.AddXP("g1", "low", 100)
	store.AddXP("g1", "high", 900)
	store.AddXP("g1", "mid", 500)
	store.AddXP("g2", "other", 5000)

	top, err := store.GetXPLeaderboard("g1", 2)
	if err != nil {
		t.Fatalf("GetXPLeaderboard: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("leaderboard size = %d, want 2", len(top))
	}
	if top[0].UserID != "high" || top[1].UserID != "mid" {
		t.Errorf("leaderboard order = %s, %s", top[0].UserID, top[1].UserID)
	}

	store.AddBalance("g1", "rich", 10000)
	richest, err := store.GetBalanceLeaderboard("g1", 1)
	if err != nil {
		t.Fatalf("GetBalanceLeaderboard: %v", err)
	}
	if len(richest) != 1 || richest[0].UserID != "rich" {
		t.Errorf("richest = %+v, want rich", richest)
	}
}

func TestGuildSettings(t *testing.T) {
	store := newTestStore(t)

	// 未知のギルドは空設定
	settings, err := store.GetGuildSettings("g1")
	if err != nil {
		t.Fatalf("GetGuildSettings: %v", err)
	}
	if settings.Prefix != "" || len(settings.DisabledModules) != 0 {
		t.Errorf("empty settings expected, got %+v", settings)
	}

	if err := store.SetGuildPrefix("g1", "!"); err != nil {
		t.Fatalf("SetGuildPrefix: %v", err)
	}
	if err := store.SetModuleDisabled("g1", "Games", true); err != nil {
		t.Fatalf("SetModuleDisabled: %v", err)
	}
	if err := store.SetModuleDisabled("g1", "Music", true); err != nil {
		t.Fatalf("SetModuleDisabled: %v", err)
	}

	settings, _ = store.GetGuildSettings("g1")
	if settings.Prefix != "!" {
		t.Errorf("prefix = %q, want %q", settings.Prefix, "!")
	}
	if !settings.ModuleDisabled("Games") || !settings.ModuleDisabled("Music") {
		t.Errorf("modules not disabled: %+v", settings.DisabledModules)
	}
	if settings.ModuleDisabled("Economy") {
		t.Error("Economy should not be disabled")
	}

	// 再有効化
	if err := store.SetModuleDisabled("g1", "Games", false); err != nil {
		t.Fatalf("SetModuleDisabled(false): %v", err)
	}
	settings, _ = store.GetGuildSettings("g1")
	if settings.ModuleDisabled("Games") {
		t.Error("Games should be re-enabled")
	}
}

func TestGuildConfigRoundtrip(t *testing.T) {
	store := newTestStore(t)

	in := WelcomeConfig{Enabled: true, ChannelID: "c1", Message: "Welcome {user} to {server}!"}
	if err := store.SaveConfig("g1", "welcome_config", &in); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	var out WelcomeConfig
	if err := store.GetConfig("g1", "welcome_config", &out); err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if out != in {
		t.Errorf("roundtrip = %+v, want %+v", out, in)
	}

	// 列名ホワイトリスト
	if err := store.SaveConfig("g1", "users; DROP TABLE users", &in); err == nil {
		t.Error("SaveConfig with invalid column should fail")
	}
	if err := store.GetConfig("g1", "bogus_config", &out); err == nil {
		t.Error("GetConfig with invalid column should fail")
	}
}

func TestWarnings(t *testing.T) {
	store := newTestStore(t)

	count, err := store.AddWarning("g1", "u1", "mod1", "spam")
	if err != nil {
		t.Fatalf("AddWarning: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	count, _ = store.AddWarning("g1", "u1", "mod2", "spam again")
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	warnings, err := store.GetWarnings("g1", "u1")
	if err != nil {
		t.Fatalf("GetWarnings: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %d, want 2", len(warnings))
	}

	if err := store.RemoveWarning("g1", warnings[0].ID); err != nil {
		t.Fatalf("RemoveWarning: %v", err)
	}
	warnings, _ = store.GetWarnings("g1", "u1")
	if len(warnings) != 1 {
		t.Errorf("warnings after remove = %d, want 1", len(warnings))
	}

	if err := store.RemoveWarning("g1", 9999); err != sql.ErrNoRows {
		t.Errorf("RemoveWarning(missing) = %v, want sql.ErrNoRows", err)
	}
}

func TestTickets(t *testing.T) {
	store := newTestStore(t)

	n1, err := store.GetNextTicketCounter("g1")
	if err != nil {
		t.Fatalf("GetNextTicketCounter: %v", err)
	}
	n2, _ := store.GetNextTicketCounter("g1")
	if n1 != 1 || n2 != 2 {
		t.Errorf("counters = %d, %d, want 1, 2", n1, n2)
	}
	// 別ギルドのカウンタは独立
	other, _ := store.GetNextTicketCounter("g2")
	if other != 1 {
		t.Errorf("other guild counter = %d, want 1", other)
	}

	if err := store.CreateTicketRecord("ch1", "g1", "u1", "help me"); err != nil {
		t.Fatalf("CreateTicketRecord: %v", err)
	}
	opener, err := store.GetTicketOpener("ch1")
	if err != nil {
		t.Fatalf("GetTicketOpener: %v", err)
	}
	if opener != "u1" {
		t.Errorf("opener = %q, want u1", opener)
	}
	if _, err := store.GetTicketOpener("nope"); err != sql.ErrNoRows {
		t.Errorf("unknown channel err = %v, want sql.ErrNoRows", err)
	}
	if err := store.CloseTicketRecord("ch1"); err != nil {
		t.Fatalf("CloseTicketRecord: %v", err)
	}
}

func TestReminders(t *testing.T) {
	store := newTestStore(t)

	now := time.Now()
	id, err := store.CreateReminder("g1", "c1", "u1", "stand up", now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if _, err := store.CreateReminder("g1", "c1", "u1", "future", now.Add(time.Hour)); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	due, err := store.GetDueReminders(now)
	if err != nil {
		t.Fatalf("GetDueReminders: %v", err)
	}
	if len(due) != 1 || due[0].ID != id || due[0].Message != "stand up" {
		t.Fatalf("due = %+v, want the past reminder only", due)
	}

	if err := store.CompleteReminder(id); err != nil {
		t.Fatalf("CompleteReminder: %v", err)
	}
	due, _ = store.GetDueReminders(now)
	if len(due) != 0 {
		t.Errorf("due after complete = %d, want 0", len(due))
	}
}

func TestShopAndInventory(t *testing.T) {
	store := newTestStore(t)

	itemID, err := store.CreateShopItem("g1", "VIP Role", 500, "shiny")
	if err != nil {
		t.Fatalf("CreateShopItem: %v", err)
	}

	items, err := store.GetShopItems("g1")
	if err != nil {
		t.Fatalf("GetShopItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "VIP Role" {
		t.Fatalf("items = %+v", items)
	}

	// 初期残高1000で500のアイテムを2回買うと2回目は残高不足
	if _, err := store.PurchaseItem("g1", "u1", itemID); err != nil {
		t.Fatalf("PurchaseItem: %v", err)
	}
	if _, err := store.PurchaseItem("g1", "u1", itemID); err != nil {
		t.Fatalf("PurchaseItem second: %v", err)
	}
	if _, err := store.PurchaseItem("g1", "u1", itemID); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("third purchase err = %v, want ErrInsufficientFunds", err)
	}
	if _, err := store.PurchaseItem("g1", "u1", 9999); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing item err = %v, want ErrItemNotFound", err)
	}

	inv, err := store.GetInventory("g1", "u1")
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if len(inv) != 1 || inv[0].Quantity != 2 {
		t.Errorf("inventory = %+v, want quantity 2", inv)
	}

	if err := store.RemoveShopItem("g1", itemID); err != nil {
		t.Fatalf("RemoveShopItem: %v", err)
	}
	if err := store.RemoveShopItem("g1", itemID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second remove err = %v, want ErrItemNotFound", err)
	}
	items, _ = store.GetShopItems("g1")
	if len(items) != 0 {
		t.Errorf("items after remove = %d, want 0", len(items))
	}
}

func TestGiveaways(t *testing.T) {
	store := newTestStore(t)

	g := &Giveaway{
		MessageID: "m1",
		GuildID:   "g1",
		ChannelID: "c1",
		Prize:     "Nitro",
		Winners:   2,
		EndsAt:    time.Now().Add(-time.Minute),
		CreatedBy: "u1",
	}
	if err := store.CreateGiveaway(g); err != nil {
		t.Fatalf("CreateGiveaway: %v", err)
	}

	if err := store.AddGiveawayEntry("m1", "a"); err != nil {
		t.Fatalf("AddGiveawayEntry: %v", err)
	}
	store.AddGiveawayEntry("m1", "b")
	store.AddGiveawayEntry("m1", "b") // 重複は無視
	n, _ := store.CountGiveawayEntries("m1")
	if n != 2 {
		t.Errorf("entries = %d, want 2", n)
	}

	has, _ := store.HasGiveawayEntry("m1", "a")
	if !has {
		t.Error("HasGiveawayEntry(a) = false, want true")
	}
	if err := store.RemoveGiveawayEntry("m1", "a"); err != nil {
		t.Fatalf("RemoveGiveawayEntry: %v", err)
	}
	has, _ = store.HasGiveawayEntry("m1", "a")
	if has {
		t.Error("HasGiveawayEntry(a) after remove = true, want false")
	}

	due, err := store.GetDueGiveaways(time.Now())
	if err != nil {
		t.Fatalf("GetDueGiveaways: %v", err)
	}
	if len(due) != 1 || due[0].Prize != "Nitro" {
		t.Fatalf("due = %+v", due)
	}

	if err := store.EndGiveaway("m1"); err != nil {
		t.Fatalf("EndGiveaway: %v", err)
	}
	due, _ = store.GetDueGiveaways(time.Now())
	if len(due) != 0 {
		t.Errorf("due after end = %d, want 0", len(due))
	}
	active, _ := store.GetActiveGiveaways("g1")
	if len(active) != 0 {
		t.Errorf("active after end = %d, want 0", len(active))
	}
}

func TestReactionRoles(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetReactionRole("g1", "m1", "👍", "r1"); err != nil {
		t.Fatalf("SetReactionRole: %v", err)
	}
	rr, err := store.GetReactionRole("g1", "m1", "👍")
	if err != nil {
		t.Fatalf("GetReactionRole: %v", err)
	}
	if rr.RoleID != "r1" {
		t.Errorf("role = %q, want r1", rr.RoleID)
	}

	// 上書き
	store.SetReactionRole("g1", "m1", "👍", "r2")
	rr, _ = store.GetReactionRole("g1", "m1", "👍")
	if rr.RoleID != "r2" {
		t.Errorf("role after upsert = %q, want r2", rr.RoleID)
	}

	if err := store.DeleteReactionRole("g1", "m1", "👍"); err != nil {
		t.Fatalf("DeleteReactionRole: %v", err)
	}
	if _, err := store.GetReactionRole("g1", "m1", "👍"); err != sql.ErrNoRows {
		t.Errorf("err after delete = %v, want sql.ErrNoRows", err)
	}
}

func TestSocialFeeds(t *testing.T) {
	store := newTestStore(t)

	id, err := store.AddSocialFeed("g1", "https://example.com/feed.xml", "c1")
	if err != nil {
		t.Fatalf("AddSocialFeed: %v", err)
	}
	store.AddSocialFeed("g2", "https://example.com/other.xml", "c2")

	feeds, err := store.ListSocialFeeds("g1")
	if err != nil {
		t.Fatalf("ListSocialFeeds: %v", err)
	}
	if len(feeds) != 1 || feeds[0].ID != id {
		t.Fatalf("feeds = %+v", feeds)
	}

	all, _ := store.GetAllSocialFeeds()
	if len(all) != 2 {
		t.Errorf("all feeds = %d, want 2", len(all))
	}

	if err := store.SetSocialFeedLastItem(id, "video123"); err != nil {
		t.Fatalf("SetSocialFeedLastItem: %v", err)
	}
	feeds, _ = store.ListSocialFeeds("g1")
	if feeds[0].LastItemID != "video123" {
		t.Errorf("last item = %q, want video123", feeds[0].LastItemID)
	}

	if err := store.RemoveSocialFeed("g1", id); err != nil {
		t.Fatalf("RemoveSocialFeed: %v", err)
	}
	if err := store.RemoveSocialFeed("g1", id); err != sql.ErrNoRows {
		t.Errorf("second remove err = %v, want sql.ErrNoRows", err)
	}
	feeds, _ = store.ListSocialFeeds("g1")
	if len(feeds) != 0 {
		t.Errorf("feeds after remove = %d, want 0", len(feeds))
	}
}

func TestAnalytics(t *testing.T) {
	store := newTestStore(t)

	store.LogEvent("g1", EventCommandUsed, "u1", "ping")
	store.LogEvent("g1", EventCommandUsed, "u2", "ping")
	store.LogEvent("g1", EventCommandUsed, "u1", "rank")
	store.LogEvent("g1", EventMemberJoin, "u3", "")

	since := time.Now().Add(-time.Hour)
	count, err := store.CountEvents("g1", EventCommandUsed, since)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 3 {
		t.Errorf("command events = %d, want 3", count)
	}

	top, err := store.TopCommands("g1", since, 5)
	if err != nil {
		t.Fatalf("TopCommands: %v", err)
	}
	if len(top) != 2 || top[0].Name != "ping" || top[0].Count != 2 {
		t.Errorf("top = %+v", top)
	}

	// 集計期間外
	count, _ = store.CountEvents("g1", EventCommandUsed, time.Now().Add(time.Hour))
	if count != 0 {
		t.Errorf("future window count = %d, want 0", count)
	}
}

func TestCommandUsage(t *testing.T) {
	store := newTestStore(t)

	store.IncrementCommandUsage("Utility")
	store.IncrementCommandUsage("Utility")
	store.IncrementCommandUsage("Games")

	usage, err := store.GetCommandUsage()
	if err != nil {
		t.Fatalf("GetCommandUsage: %v", err)
	}
	if usage["Utility"] != 2 || usage["Games"] != 1 {
		t.Errorf("usage = %+v", usage)
	}
}

func TestMessageCache(t *testing.T) {
	store := newTestStore(t)

	if err := store.CreateMessageCache("m1", "hello", "u1"); err != nil {
		t.Fatalf("CreateMessageCache: %v", err)
	}
	msg, err := store.GetMessageCache("m1")
	if err != nil {
		t.Fatalf("GetMessageCache: %v", err)
	}
	if msg.Content != "hello" || msg.AuthorID != "u1" {
		t.Errorf("cached = %+v", msg)
	}
	// 取得時に削除される
	if _, err := store.GetMessageCache("m1"); err == nil {
		t.Error("second GetMessageCache should fail")
	}
}
