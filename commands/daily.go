package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

const (
	dailyAmount   = 200
	dailyCooldown = 24 * time.Hour
)

type DailyCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *DailyCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "daily",
		Description:  "Claims your daily coins.",
		DMPermission: boolPtr(false),
	}
}

func (c *DailyCommand) Handle(ctx *Context) {
	user, err := c.Store.GetUser(ctx.GuildID(), ctx.User().ID)
	if err != nil {
		c.Log.Error("Failed to load user for daily", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}

	if user.LastDaily.Valid {
		next := user.LastDaily.Time.Add(dailyCooldown)
		if time.Now().Before(next) {
			ctx.ReplyEphemeral(fmt.Sprintf("⏳ You already claimed your daily. Come back <t:%d:R>.", next.Unix()))
			return
		}
	}

	newBalance, err := c.Store.AddBalance(ctx.GuildID(), ctx.User().ID, dailyAmount)
	if err != nil {
		c.Log.Error("Failed to add daily coins", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}
	if err := c.Store.SetLastDaily(ctx.GuildID(), ctx.User().ID, time.Now()); err != nil {
		c.Log.Error("Failed to set daily timestamp", "error", err, "userID", ctx.User().ID)
	}

	ctx.Reply(fmt.Sprintf("💰 You claimed **%d** coins! Balance: %d", dailyAmount, newBalance))
}

func (c *DailyCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *DailyCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *DailyCommand) GetComponentIDs() []string                                            { return nil }
func (c *DailyCommand) GetCategory() string                                                  { return CategoryEconomy }
