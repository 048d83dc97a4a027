package bot

import (
	"math/rand"
	"sync"
	"time"

	"logiq/interfaces"
	"logiq/storage"
)

const (
	xpMin           = 15
	xpMax           = 25
	xpCooldown      = 60 * time.Second
	xpFlushInterval = 10 * time.Second
	xpFlushLimit    = 200
)

type xpStore interface {
	AddXPBatch(awards []storage.XPAward) ([]storage.LevelUp, error)
}

// XPBatcher は発言で得たXPをメモリ上に積み、まとめて書き込みます。
// メッセージごとにトランザクションを張らないための緩衝層で、
// ユーザーごとの獲得クールダウンもここで判定します。
type XPBatcher struct {
	log      interfaces.Logger
	store    xpStore
	announce func(up storage.LevelUp)

	mu        sync.Mutex
	pending   map[xpKey]*storage.XPAward
	lastAward map[xpKey]time.Time

	stop chan struct{}
	done chan struct{}
}

type xpKey struct {
	guildID string
	userID  string
}

// NewXPBatcher はバッチ書き込み器を作ります。announce はレベルアップごとに
// 呼ばれます。nil なら通知しません。
func NewXPBatcher(log interfaces.Logger, store xpStore, announce func(storage.LevelUp)) *XPBatcher {
	return &XPBatcher{
		log:       log,
		store:     store,
		announce:  announce,
		pending:   make(map[xpKey]*storage.XPAward),
		lastAward: make(map[xpKey]time.Time),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Award はクールダウン中でなければランダムなXPを積みます。
// ChannelID はレベルアップ通知の宛先として最後の発言チャンネルを覚えます。
func (x *XPBatcher) Award(guildID, userID, channelID string) {
	key := xpKey{guildID: guildID, userID: userID}
	now := time.Now()

	x.mu.Lock()
	if last, ok := x.lastAward[key]; ok && now.Sub(last) < xpCooldown {
		x.mu.Unlock()
		return
	}
	x.lastAward[key] = now

	amount := xpMin + rand.Intn(xpMax-xpMin+1)
	if a, ok := x.pending[key]; ok {
		a.Amount += amount
		a.ChannelID = channelID
	} else {
		x.pending[key] = &storage.XPAward{
			GuildID:   guildID,
			UserID:    userID,
			Amount:    amount,
			ChannelID: channelID,
		}
	}
	full := len(x.pending) >= xpFlushLimit
	x.mu.Unlock()

	if full {
		x.Flush()
	}
}

// Flush は積まれたXPを単一トランザクションで書き込み、
// 発生したレベルアップを announce に渡します。
func (x *XPBatcher) Flush() {
	x.mu.Lock()
	if len(x.pending) == 0 {
		x.mu.Unlock()
		return
	}
	awards := make([]storage.XPAward, 0, len(x.pending))
	for _, a := range x.pending {
		awards = append(awards, *a)
	}
	x.pending = make(map[xpKey]*storage.XPAward)

	// 期限の切れたクールダウン記録はこのタイミングで捨てる
	now := time.Now()
	for key, last := range x.lastAward {
		if now.Sub(last) >= xpCooldown {
			delete(x.lastAward, key)
		}
	}
	x.mu.Unlock()

	ups, err := x.store.AddXPBatch(awards)
	if err != nil {
		x.log.Error("Failed to flush XP batch", "error", err, "count", len(awards))
		return
	}
	if x.announce == nil {
		return
	}
	for _, up := range ups {
		x.announce(up)
	}
}

// Start は定期フラッシュのループを開始します。
func (x *XPBatcher) Start() {
	go x.run()
}

func (x *XPBatcher) run() {
	defer close(x.done)
	ticker := time.NewTicker(xpFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			x.Flush()
		case <-x.stop:
			x.Flush()
			return
		}
	}
}

// Stop はループを止め、残りを書き込んでから戻ります。
func (x *XPBatcher) Stop() {
	close(x.stop)
	<-x.done
}
