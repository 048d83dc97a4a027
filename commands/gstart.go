package commands

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// GiveawayEnterPrefix is the custom ID prefix of the entry toggle button.
// The full ID carries the giveaway message ID after the colon.
const GiveawayEnterPrefix = "giveaway_enter"

const maxGiveawayLength = 30 * 24 * time.Hour

type GStartCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *GStartCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "gstart",
		Description:              "Starts a giveaway in this channel.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageGuild),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "duration", Description: "How long it runs, e.g. 1h, 1d (max 30d)", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "winners", Description: "Number of winners", Required: true, MinValue: &[]float64{1}[0], MaxValue: 20},
			{Type: discordgo.ApplicationCommandOptionString, Name: "prize", Description: "What the winners get", Required: true},
		},
	}
}

func (c *GStartCommand) Handle(ctx *Context) {
	dur, err := ParseLongDuration(ctx.String("duration"))
	if err != nil {
		ctx.ReplyEphemeral("❌ Invalid duration. Use forms like `30m`, `2h` or `1d`.")
		return
	}
	if dur > maxGiveawayLength {
		ctx.ReplyEphemeral("❌ Giveaways can run at most 30 days.")
		return
	}

	winners := int(ctx.Int("winners"))
	prize := ctx.String("prize")
	endsAt := time.Now().Add(dur)

	// ボタンIDにメッセージIDを載せるため、先にメッセージを送ってから編集する
	msg, err := ctx.Session.ChannelMessageSendEmbed(ctx.ChannelID(), giveawayEmbed(prize, winners, endsAt, 0))
	if err != nil {
		c.Log.Error("Failed to post giveaway", "error", err, "channelID", ctx.ChannelID())
		ctx.ReplyEphemeral("❌ Failed to start the giveaway.")
		return
	}

	g := &storage.Giveaway{
		MessageID: msg.ID,
		GuildID:   ctx.GuildID(),
		ChannelID: ctx.ChannelID(),
		Prize:     prize,
		Winners:   winners,
		EndsAt:    endsAt,
		CreatedBy: ctx.User().ID,
	}
	if err := c.Store.CreateGiveaway(g); err != nil {
		c.Log.Error("Failed to save giveaway", "error", err, "messageID", msg.ID)
		ctx.Session.ChannelMessageDelete(msg.ChannelID, msg.ID)
		ctx.ReplyEphemeral("❌ Failed to start the giveaway.")
		return
	}

	ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      msg.ID,
		Channel: msg.ChannelID,
		Embeds:  &[]*discordgo.MessageEmbed{giveawayEmbed(prize, winners, endsAt, 0)},
		Components: &[]discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Enter", Style: discordgo.PrimaryButton, CustomID: GiveawayEnterPrefix + ":" + msg.ID, Emoji: &discordgo.ComponentEmoji{Name: "🎉"}},
		}}},
	})

	ctx.ReplyEphemeral(fmt.Sprintf("🎉 Giveaway started. It ends <t:%d:R>.", endsAt.Unix()))
}

// HandleComponent は参加ボタンのトグルを処理します。
func (c *GStartCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	_, messageID, ok := strings.Cut(customID, ":")
	if !ok {
		return
	}

	g, err := c.Store.GetGiveaway(messageID)
	if err != nil || g.Ended {
		respondEphemeral(s, i, "❌ This giveaway has already ended.")
		return
	}

	userID := i.Member.User.ID
	entered, err := c.Store.HasGiveawayEntry(messageID, userID)
	if err != nil {
		c.Log.Error("Failed to check giveaway entry", "error", err, "messageID", messageID)
		respondEphemeral(s, i, "❌ Something went wrong. Try again.")
		return
	}

	if entered {
		if err := c.Store.RemoveGiveawayEntry(messageID, userID); err != nil {
			c.Log.Error("Failed to remove giveaway entry", "error", err, "messageID", messageID)
			return
		}
		respondEphemeral(s, i, "↩️ Your entry was withdrawn.")
	} else {
		if err := c.Store.AddGiveawayEntry(messageID, userID); err != nil {
			c.Log.Error("Failed to add giveaway entry", "error", err, "messageID", messageID)
			return
		}
		respondEphemeral(s, i, "🎉 You're in! Good luck.")
	}

	// 埋め込みの参加者数を更新する
	if count, err := c.Store.CountGiveawayEntries(messageID); err == nil {
		s.ChannelMessageEditEmbed(g.ChannelID, g.MessageID, giveawayEmbed(g.Prize, g.Winners, g.EndsAt, count))
	}
}

func giveawayEmbed(prize string, winners int, endsAt time.Time, entries int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Giveaway: " + prize,
		Description: fmt.Sprintf("Press the button to enter!\nEnds <t:%d:R>", endsAt.Unix()),
		Color:       0xe91e63,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winners", Value: fmt.Sprintf("%d", winners), Inline: true},
			{Name: "Entries", Value: fmt.Sprintf("%d", entries), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Ends"},
		Timestamp: endsAt.Format(time.RFC3339),
	}
}

// PickGiveawayWinners draws up to n unique winners from the entries.
func PickGiveawayWinners(entries []string, n int) []string {
	if n >= len(entries) {
		return entries
	}
	shuffled := make([]string, len(entries))
	copy(shuffled, entries)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// FinishGiveaway ends a giveaway, draws winners and announces the result.
// Shared between the gend command and the scheduled sweep.
func FinishGiveaway(s *discordgo.Session, store interfaces.DataStore, log interfaces.Logger, g *storage.Giveaway) {
	entries, err := store.GetGiveawayEntries(g.MessageID)
	if err != nil {
		log.Error("Failed to load giveaway entries", "error", err, "messageID", g.MessageID)
		return
	}
	if err := store.EndGiveaway(g.MessageID); err != nil {
		log.Error("Failed to mark giveaway ended", "error", err, "messageID", g.MessageID)
		return
	}

	// ボタンを外して終了表示に差し替える
	ended := giveawayEmbed(g.Prize, g.Winners, g.EndsAt, len(entries))
	ended.Description = "This giveaway has ended."
	ended.Color = 0x95a5a6
	s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         g.MessageID,
		Channel:    g.ChannelID,
		Embeds:     &[]*discordgo.MessageEmbed{ended},
		Components: &[]discordgo.MessageComponent{},
	})

	if len(entries) == 0 {
		s.ChannelMessageSend(g.ChannelID, fmt.Sprintf("🎉 The giveaway for **%s** ended with no entries.", g.Prize))
		return
	}

	winners := PickGiveawayWinners(entries, g.Winners)
	mentions := make([]string, len(winners))
	for i, id := range winners {
		mentions[i] = "<@" + id + ">"
	}
	s.ChannelMessageSend(g.ChannelID, fmt.Sprintf("🎉 Congratulations %s! You won **%s**!", strings.Join(mentions, ", "), g.Prize))
}

func (c *GStartCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *GStartCommand) GetComponentIDs() []string                                        { return []string{GiveawayEnterPrefix} }
func (c *GStartCommand) GetCategory() string                                              { return CategoryGiveaways }
