package bot

import (
	"fmt"
	"sync"
	"testing"

	"logiq/storage"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Fatal(msg string, args ...any) {}

type xpStoreStub struct {
	mu      sync.Mutex
	batches [][]storage.XPAward
	ups     []storage.LevelUp
}

func (s *xpStoreStub) AddXPBatch(awards []storage.XPAward) ([]storage.LevelUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, awards)
	return s.ups, nil
}

func TestXPBatcherFlush(t *testing.T) {
	stub := &xpStoreStub{}
	b := NewXPBatcher(nopLogger{}, stub, nil)

	b.Award("g1", "u1", "c1")
	b.Award("g1", "u2", "c2")
	b.Flush()

	if len(stub.batches) != 1 {
		t.Fatalf("flush count = %d, want 1", len(stub.batches))
	}
	batch := stub.batches[0]
	if len(batch) != 2 {
		t.Fatalf("batch size = %d, want 2", len(batch))
	}
	for _, a := range batch {
		if a.Amount < xpMin || a.Amount > xpMax {
			t.Errorf("award amount %d outside [%d, %d]", a.Amount, xpMin, xpMax)
		}
	}

	// 空のフラッシュは書き込みを発生させない
	b.Flush()
	if len(stub.batches) != 1 {
		t.Fatalf("empty flush wrote a batch")
	}
}

func TestXPBatcherCooldown(t *testing.T) {
	stub := &xpStoreStub{}
	b := NewXPBatcher(nopLogger{}, stub, nil)

	b.Award("g1", "u1", "c1")
	b.Award("g1", "u1", "c1")
	b.Flush()

	if len(stub.batches) != 1 {
		t.Fatalf("flush count = %d, want 1", len(stub.batches))
	}
	if got := len(stub.batches[0]); got != 1 {
		t.Fatalf("batch size = %d, want 1 (second award within cooldown)", got)
	}
}

func TestXPBatcherFlushesAtLimit(t *testing.T) {
	stub := &xpStoreStub{}
	b := NewXPBatcher(nopLogger{}, stub, nil)

	for i := 0; i < xpFlushLimit; i++ {
		b.Award("g1", fmt.Sprintf("u%d", i), "c1")
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.batches) != 1 {
		t.Fatalf("flush count = %d, want 1 (threshold reached)", len(stub.batches))
	}
	if got := len(stub.batches[0]); got != xpFlushLimit {
		t.Fatalf("batch size = %d, want %d", got, xpFlushLimit)
	}
}

func TestXPBatcherAnnouncesLevelUps(t *testing.T) {
	stub := &xpStoreStub{
		ups: []storage.LevelUp{{GuildID: "g1", UserID: "u1", ChannelID: "c1", Level: 2}},
	}
	var announced []storage.LevelUp
	b := NewXPBatcher(nopLogger{}, stub, func(up storage.LevelUp) {
		announced = append(announced, up)
	})

	b.Award("g1", "u1", "c1")
	b.Flush()

	if len(announced) != 1 {
		t.Fatalf("announced %d level ups, want 1", len(announced))
	}
	if announced[0].Level != 2 || announced[0].ChannelID != "c1" {
		t.Errorf("announced = %+v, want level 2 in c1", announced[0])
	}
}
