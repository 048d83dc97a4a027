package commands

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ExchangeCommand converts between currencies using Google Finance quotes.
type ExchangeCommand struct {
	Log    interfaces.Logger
	client *http.Client
}

func NewExchangeCommand(log interfaces.Logger) *ExchangeCommand {
	return &ExchangeCommand{
		Log:    log,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ExchangeCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "exchange",
		Description: "Converts an amount between two currencies.",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionNumber, Name: "amount", Description: "Amount to convert", Required: true, MinValue: &[]float64{0}[0]},
			{Type: discordgo.ApplicationCommandOptionString, Name: "from", Description: "Source currency code, e.g. USD", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "to", Description: "Target currency code, e.g. JPY", Required: true},
		},
	}
}

func (c *ExchangeCommand) Handle(ctx *Context) {
	amount := ctx.Float("amount")
	from := strings.ToUpper(ctx.String("from"))
	to := strings.ToUpper(ctx.String("to"))

	if !currencyCodePattern.MatchString(from) || !currencyCodePattern.MatchString(to) {
		ctx.ReplyEphemeral("❌ Currency codes must be three letters, e.g. `USD` or `JPY`.")
		return
	}

	if err := ctx.Defer(); err != nil {
		return
	}

	rate, err := c.fetchRate(from, to)
	if err != nil {
		c.Log.Error("Failed to fetch exchange rate", "error", err, "from", from, "to", to)
		ctx.EditReply(fmt.Sprintf("❌ Could not fetch the %s/%s rate. Check the currency codes.", from, to))
		return
	}

	ctx.EditReply(fmt.Sprintf("💱 %.2f %s = **%.2f %s** (1 %s = %.4f %s)",
		amount, from, amount*rate, to, from, rate, to))
}

// fetchRate はGoogle Financeの為替ページからレートを取り出します。
func (c *ExchangeCommand) fetchRate(from, to string) (float64, error) {
	url := fmt.Sprintf("https://www.google.com/finance/quote/%s-%s", from, to)

	resp, err := c.client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quote page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote page returned status %d", resp.StatusCode)
	}
	return parseQuoteRate(resp.Body)
}

// parseQuoteRate は為替ページのHTMLからレートの数値を取り出します。
func parseQuoteRate(r io.Reader) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to parse quote page: %w", err)
	}

	rateText := strings.TrimSpace(doc.Find(".YMlKec.fxKbKc").First().Text())
	if rateText == "" {
		return 0, fmt.Errorf("rate element not found")
	}

	rate, err := strconv.ParseFloat(strings.ReplaceAll(rateText, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate %q: %w", rateText, err)
	}
	return rate, nil
}

func (c *ExchangeCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *ExchangeCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *ExchangeCommand) GetComponentIDs() []string                                            { return nil }
func (c *ExchangeCommand) GetCategory() string                                                  { return CategoryUtility }
