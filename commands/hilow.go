package commands

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// The full button ID carries the player's user ID after the colon.
const (
	HiLowHighButtonID = "hilow_high"
	HiLowLowButtonID  = "hilow_low"
)

var hilowRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

type hilowGame struct {
	bet  int64
	card int // 0-12のインデックス
}

// HiLowCommand is a single-round card game. Guess whether the next card
// is higher or lower, a correct guess doubles the bet and a tie refunds.
type HiLowCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger

	mu    sync.Mutex
	games map[string]*hilowGame // key: guildID:userID
}

func NewHiLowCommand(store interfaces.DataStore, log interfaces.Logger) *HiLowCommand {
	return &HiLowCommand{
		Store: store,
		Log:   log,
		games: make(map[string]*hilowGame),
	}
}

func (c *HiLowCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "hilow",
		Description:  "Guess whether the next card is higher or lower.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "bet", Description: "Coins to bet (default 10)", Required: false, MinValue: &[]float64{1}[0]},
		},
	}
}

func (c *HiLowCommand) Handle(ctx *Context) {
	bet := ctx.Int("bet")
	if bet == 0 {
		bet = defaultGameBet
	}
	key := ctx.GuildID() + ":" + ctx.User().ID

	c.mu.Lock()
	if _, running := c.games[key]; running {
		c.mu.Unlock()
		ctx.ReplyEphemeral("❌ You already have a game running. Finish it first.")
		return
	}
	c.mu.Unlock()

	if _, err := c.Store.RemoveBalance(ctx.GuildID(), ctx.User().ID, bet); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			ctx.ReplyEphemeral("❌ You don't have enough coins for that bet.")
			return
		}
		c.Log.Error("Failed to take hilow bet", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}

	card := rand.Intn(len(hilowRanks))
	c.mu.Lock()
	c.games[key] = &hilowGame{bet: bet, card: card}
	c.mu.Unlock()

	ctx.ReplyComponents("", []*discordgo.MessageEmbed{{
		Title:       "🃏 High-Low",
		Description: fmt.Sprintf("Your card is **%s**. Will the next one be higher or lower?\nBet: %d coins", hilowRanks[card], bet),
		Color:       0x9b59b6,
	}}, []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "Higher", Style: discordgo.SuccessButton, CustomID: HiLowHighButtonID + ":" + ctx.User().ID, Emoji: &discordgo.ComponentEmoji{Name: "⬆️"}},
		discordgo.Button{Label: "Lower", Style: discordgo.DangerButton, CustomID: HiLowLowButtonID + ":" + ctx.User().ID, Emoji: &discordgo.ComponentEmoji{Name: "⬇️"}},
	}}})
}

func (c *HiLowCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	action, ownerID, _ := strings.Cut(i.MessageComponentData().CustomID, ":")
	if ownerID != i.Member.User.ID {
		respondEphemeral(s, i, "❌ This is not your game.")
		return
	}

	key := i.GuildID + ":" + i.Member.User.ID
	c.mu.Lock()
	game, ok := c.games[key]
	if ok {
		delete(c.games, key)
	}
	c.mu.Unlock()

	if !ok {
		respondEphemeral(s, i, "❌ This game already finished.")
		return
	}

	guessHigh := action == HiLowHighButtonID
	next := rand.Intn(len(hilowRanks))

	var outcome string
	var color int
	switch {
	case next == game.card:
		if _, err := c.Store.AddBalance(i.GuildID, i.Member.User.ID, game.bet); err != nil {
			c.Log.Error("Failed to refund hilow push", "error", err, "userID", i.Member.User.ID)
		}
		outcome = fmt.Sprintf("It's **%s**, a tie! Your bet was refunded.", hilowRanks[next])
		color = 0x95a5a6
	case (next > game.card) == guessHigh:
		if _, err := c.Store.AddBalance(i.GuildID, i.Member.User.ID, game.bet*2); err != nil {
			c.Log.Error("Failed to pay hilow winnings", "error", err, "userID", i.Member.User.ID)
		}
		outcome = fmt.Sprintf("It's **%s**, you called it! You won **%d** coins.", hilowRanks[next], game.bet)
		color = 0x2ecc71
	default:
		outcome = fmt.Sprintf("It's **%s**. You lost **%d** coins.", hilowRanks[next], game.bet)
		color = 0xe74c3c
	}

	respondUpdate(s, i, "", []*discordgo.MessageEmbed{{
		Title:       "🃏 High-Low",
		Description: fmt.Sprintf("First card: **%s**\n%s", hilowRanks[game.card], outcome),
		Color:       color,
	}}, []discordgo.MessageComponent{})
}

func (c *HiLowCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *HiLowCommand) GetComponentIDs() []string {
	return []string{HiLowHighButtonID, HiLowLowButtonID}
}
func (c *HiLowCommand) GetCategory() string { return CategoryGames }
