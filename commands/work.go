package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

const (
	workMin      = 50
	workMax      = 250
	workCooldown = 6 * time.Hour
)

var workJobs = []string{
	"debugged a legacy codebase",
	"walked a pack of dogs",
	"served tables at the café",
	"streamed for three hours",
	"fixed a leaky faucet",
	"delivered mysterious packages",
	"moderated a heated forum thread",
}

type WorkCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *WorkCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         "work",
		Description:  "Works a shift for coins (every 6 hours).",
		DMPermission: boolPtr(false),
	}
}

func (c *WorkCommand) Handle(ctx *Context) {
	user, err := c.Store.GetUser(ctx.GuildID(), ctx.User().ID)
	if err != nil {
		c.Log.Error("Failed to load user for work", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}

	if user.LastWork.Valid {
		next := user.LastWork.Time.Add(workCooldown)
		if time.Now().Before(next) {
			ctx.ReplyEphemeral(fmt.Sprintf("😮‍💨 You're exhausted. You can work again <t:%d:R>.", next.Unix()))
			return
		}
	}

	earned := int64(workMin + rand.Intn(workMax-workMin+1))
	newBalance, err := c.Store.AddBalance(ctx.GuildID(), ctx.User().ID, earned)
	if err != nil {
		c.Log.Error("Failed to pay work earnings", "error", err, "userID", ctx.User().ID)
		ctx.ReplyEphemeral("❌ Something went wrong.")
		return
	}
	if err := c.Store.SetLastWork(ctx.GuildID(), ctx.User().ID, time.Now()); err != nil {
		c.Log.Error("Failed to set work timestamp", "error", err, "userID", ctx.User().ID)
	}

	job := workJobs[rand.Intn(len(workJobs))]
	ctx.Reply(fmt.Sprintf("🔧 You %s and earned **%d** coins! Balance: %d", job, earned, newBalance))
}

func (c *WorkCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *WorkCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *WorkCommand) GetComponentIDs() []string                                            { return nil }
func (c *WorkCommand) GetCategory() string                                                  { return CategoryEconomy }
