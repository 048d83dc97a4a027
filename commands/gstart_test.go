package commands

import "testing"

func TestPickGiveawayWinnersUnique(t *testing.T) {
	entries := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8"}

	winners := PickGiveawayWinners(entries, 3)
	if len(winners) != 3 {
		t.Fatalf("expected 3 winners, got %d", len(winners))
	}

	seen := make(map[string]bool)
	valid := make(map[string]bool)
	for _, e := range entries {
		valid[e] = true
	}
	for _, w := range winners {
		if seen[w] {
			t.Errorf("winner %s picked twice", w)
		}
		if !valid[w] {
			t.Errorf("winner %s was never entered", w)
		}
		seen[w] = true
	}
}

func TestPickGiveawayWinnersFewerEntries(t *testing.T) {
	entries := []string{"u1", "u2"}

	winners := PickGiveawayWinners(entries, 5)
	if len(winners) != 2 {
		t.Fatalf("expected everyone to win, got %d winners", len(winners))
	}
}

func TestPickGiveawayWinnersNoEntries(t *testing.T) {
	if winners := PickGiveawayWinners(nil, 1); len(winners) != 0 {
		t.Fatalf("expected no winners, got %v", winners)
	}
}
