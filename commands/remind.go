package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

// 予約できる期間の上限
const maxReminderAhead = 365 * 24 * time.Hour

type RemindCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *RemindCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "remind",
		Description: "Sets a reminder delivered in this channel.",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "in", Description: "When, e.g. 10m, 2h30m, 1d", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "What to remind you about", Required: true},
		},
	}
}

func (c *RemindCommand) Handle(ctx *Context) {
	dur, err := ParseLongDuration(ctx.String("in"))
	if err != nil {
		ctx.ReplyEphemeral("❌ Invalid duration. Use forms like `10m`, `2h30m` or `1d`.")
		return
	}
	if dur > maxReminderAhead {
		ctx.ReplyEphemeral("❌ Reminders can be at most a year ahead.")
		return
	}

	remindAt := time.Now().Add(dur)
	_, err = c.Store.CreateReminder(ctx.GuildID(), ctx.ChannelID(), ctx.User().ID, ctx.String("message"), remindAt)
	if err != nil {
		c.Log.Error("Failed to create reminder", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Failed to save the reminder.")
		return
	}

	ctx.Reply(fmt.Sprintf("⏰ Got it. I'll remind you <t:%d:R>.", remindAt.Unix()))
}

func (c *RemindCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *RemindCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *RemindCommand) GetComponentIDs() []string                                            { return nil }
func (c *RemindCommand) GetCategory() string                                                  { return CategoryUtility }
