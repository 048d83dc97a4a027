package commands

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// ベット未指定のときの賭け金。
const defaultGameBet = 10

var (
	slotReel = []string{"🍒", "🍋", "🍊", "🍉", "🍇", "🍓", "💎"}

	slotPayouts = map[string]int64{
		"💎💎💎": 50,
		"🍇🍇🍇": 20,
		"🍓🍓🍓": 15,
		"🍉🍉🍉": 10,
		"🍊🍊🍊": 8,
		"🍋🍋🍋": 5,
		"🍒🍒🍒": 3,
	}
)

type SlotsCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *SlotsCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "slots",
		Description:  "Spins the slot machine.",
		DMPermission: boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "bet", Description: "Coins to bet (default 10)", Required: false, MinValue: &[]float64{1}[0]},
		},
	}
}

func (c *SlotsCommand) Handle(ctx *Context) {
	bet := ctx.Int("bet")
	if bet == 0 {
		bet = defaultGameBet
	}

	// 先に賭け金を引く。残高不足はここで弾かれる
	if _, err := c.Store.RemoveBalance(ctx.GuildID(), ctx.User().ID, bet); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			ctx.ReplyEphemeral("❌ You don't have enough coins for that bet.")
			return
		}
		c.Log.Error("Failed to take slots bet", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}

	if err := ctx.Defer(); err != nil {
		return
	}

	final := []string{
		slotReel[rand.Intn(len(slotReel))],
		slotReel[rand.Intn(len(slotReel))],
		slotReel[rand.Intn(len(slotReel))],
	}

	// 短い回転アニメーション
	spin := &discordgo.MessageEmbed{Title: "🎰 Spinning...", Color: 0x3498db}
	for j := 0; j < 3; j++ {
		spin.Description = fmt.Sprintf("**[ %s | %s | %s ]**",
			slotReel[rand.Intn(len(slotReel))],
			slotReel[rand.Intn(len(slotReel))],
			slotReel[rand.Intn(len(slotReel))])
		ctx.EditReplyEmbed(spin)
		time.Sleep(600 * time.Millisecond)
	}

	payout := slotPayouts[strings.Join(final, "")]
	var newBalance int64
	var err error
	if payout > 0 {
		newBalance, err = c.Store.AddBalance(ctx.GuildID(), ctx.User().ID, bet*payout)
	} else {
		u, uerr := c.Store.GetUser(ctx.GuildID(), ctx.User().ID)
		if uerr == nil {
			newBalance = u.Balance
		}
		err = uerr
	}
	if err != nil {
		c.Log.Error("Failed to settle slots bet", "error", err, "userID", ctx.User().ID)
	}

	result := &discordgo.MessageEmbed{
		Title:       "🎰 Slots",
		Description: fmt.Sprintf("**[ %s | %s | %s ]**", final[0], final[1], final[2]),
	}
	if payout > 0 {
		result.Color = 0x2ecc71
		result.Fields = []*discordgo.MessageEmbedField{
			{Name: "Result", Value: fmt.Sprintf("🎉 You won **%d** coins! (x%d)", bet*payout-bet, payout)},
			{Name: "Balance", Value: fmt.Sprintf("%d", newBalance)},
		}
	} else {
		result.Color = 0xe74c3c
		result.Fields = []*discordgo.MessageEmbedField{
			{Name: "Result", Value: fmt.Sprintf("💸 You lost **%d** coins.", bet)},
			{Name: "Balance", Value: fmt.Sprintf("%d", newBalance)},
		}
	}
	ctx.EditReplyEmbed(result)
}

func (c *SlotsCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *SlotsCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *SlotsCommand) GetComponentIDs() []string                                            { return nil }
func (c *SlotsCommand) GetCategory() string                                                  { return CategoryGames }
