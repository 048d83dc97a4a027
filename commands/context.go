package commands

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// optionValue は、スラッシュ・従来型の両経路から来たオプション値の内部表現です。
// ユーザー・チャンネル・ロールはIDのみの場合があり、取得時に遅延解決します。
type optionValue struct {
	str       string
	i         int64
	f         float64
	b         bool
	userID    string
	channelID string
	roleID    string
	user      *discordgo.User
	channel   *discordgo.Channel
	role      *discordgo.Role
}

// Context はコマンド実行時の文脈です。スラッシュコマンドのインタラクションか、
// プレフィックス付きメッセージのどちらか一方をラップし、コマンド本体からは
// 同じAPIで扱えるようにします。
type Context struct {
	Session *discordgo.Session

	interaction   *discordgo.InteractionCreate
	message       *discordgo.Message
	invokedPrefix string

	sub      string
	opts     map[string]optionValue
	deferred bool
	replyMsg *discordgo.Message
}

// NewInteractionContext はスラッシュコマンドのインタラクションからContextを作ります。
func NewInteractionContext(s *discordgo.Session, i *discordgo.InteractionCreate) *Context {
	ctx := &Context{
		Session:     s,
		interaction: i,
		opts:        make(map[string]optionValue),
	}

	data := i.ApplicationCommandData()
	options := data.Options
	if len(options) == 1 && options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		ctx.sub = options[0].Name
		options = options[0].Options
	}

	for _, opt := range options {
		v := optionValue{}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			v.str = opt.StringValue()
		case discordgo.ApplicationCommandOptionInteger:
			v.i = opt.IntValue()
		case discordgo.ApplicationCommandOptionNumber:
			v.f = opt.FloatValue()
		case discordgo.ApplicationCommandOptionBoolean:
			v.b = opt.BoolValue()
		case discordgo.ApplicationCommandOptionUser:
			if u := opt.UserValue(s); u != nil {
				v.user = u
				v.userID = u.ID
			}
		case discordgo.ApplicationCommandOptionChannel:
			if ch := opt.ChannelValue(s); ch != nil {
				v.channel = ch
				v.channelID = ch.ID
			}
		case discordgo.ApplicationCommandOptionRole:
			if r := opt.RoleValue(s, i.GuildID); r != nil {
				v.role = r
				v.roleID = r.ID
			}
		}
		ctx.opts[opt.Name] = v
	}
	return ctx
}

// NewMessageContext は従来型コマンドのメッセージからContextを作ります。
// tokensはプレフィックスとコマンド名を取り除いたあとの引数列です。
func NewMessageContext(s *discordgo.Session, m *discordgo.MessageCreate, def *discordgo.ApplicationCommand, prefix string, tokens []string) (*Context, error) {
	sub, opts, err := parseArgs(def, tokens)
	if err != nil {
		return nil, err
	}
	return &Context{
		Session:       s,
		message:       m.Message,
		invokedPrefix: prefix,
		sub:           sub,
		opts:          opts,
	}, nil
}

// IsSlash はスラッシュコマンド経由の呼び出しかどうかを返します。
func (c *Context) IsSlash() bool {
	return c.interaction != nil
}

// Prefix は従来型呼び出しで使われたプレフィックスを返します。スラッシュ経由では "/" です。
func (c *Context) Prefix() string {
	if c.interaction != nil {
		return "/"
	}
	return c.invokedPrefix
}

func (c *Context) GuildID() string {
	if c.interaction != nil {
		return c.interaction.GuildID
	}
	return c.message.GuildID
}

func (c *Context) ChannelID() string {
	if c.interaction != nil {
		return c.interaction.ChannelID
	}
	return c.message.ChannelID
}

// User は呼び出したユーザーを返します。
func (c *Context) User() *discordgo.User {
	if c.interaction != nil {
		if c.interaction.Member != nil {
			return c.interaction.Member.User
		}
		return c.interaction.User
	}
	return c.message.Author
}

// Member は呼び出したギルドメンバーを返します。DMではnilです。
func (c *Context) Member() *discordgo.Member {
	if c.interaction != nil {
		return c.interaction.Member
	}
	return c.message.Member
}

// Subcommand は選択されたサブコマンド名を返します。
func (c *Context) Subcommand() string {
	return c.sub
}

// TriggerMessageID はテキスト起動時の元メッセージIDを返します。
// スラッシュ起動では空文字列です。
func (c *Context) TriggerMessageID() string {
	if c.message != nil {
		return c.message.ID
	}
	return ""
}

// Has は指定オプションが渡されたかを返します。
func (c *Context) Has(name string) bool {
	_, ok := c.opts[name]
	return ok
}

// Options は渡されたオプション名の一覧を返します。
func (c *Context) Options() []string {
	names := make([]string, 0, len(c.opts))
	for name := range c.opts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Context) String(name string) string {
	return c.opts[name].str
}

func (c *Context) Int(name string) int64 {
	return c.opts[name].i
}

func (c *Context) Float(name string) float64 {
	return c.opts[name].f
}

func (c *Context) Bool(name string) bool {
	return c.opts[name].b
}

// UserOpt はユーザー型オプションを返します。未解決のIDはAPIで解決します。
func (c *Context) UserOpt(name string) *discordgo.User {
	v, ok := c.opts[name]
	if !ok {
		return nil
	}
	if v.user != nil {
		return v.user
	}
	if v.userID == "" {
		return nil
	}
	if u, err := c.Session.User(v.userID); err == nil {
		v.user = u
		c.opts[name] = v
		return u
	}
	return &discordgo.User{ID: v.userID}
}

// ChannelOpt はチャンネル型オプションを返します。
func (c *Context) ChannelOpt(name string) *discordgo.Channel {
	v, ok := c.opts[name]
	if !ok {
		return nil
	}
	if v.channel != nil {
		return v.channel
	}
	if v.channelID == "" {
		return nil
	}
	if ch, err := c.Session.State.Channel(v.channelID); err == nil {
		v.channel = ch
		c.opts[name] = v
		return ch
	}
	if ch, err := c.Session.Channel(v.channelID); err == nil {
		v.channel = ch
		c.opts[name] = v
		return ch
	}
	return &discordgo.Channel{ID: v.channelID}
}

// RoleOpt はロール型オプションを返します。
func (c *Context) RoleOpt(name string) *discordgo.Role {
	v, ok := c.opts[name]
	if !ok {
		return nil
	}
	if v.role != nil {
		return v.role
	}
	if v.roleID == "" {
		return nil
	}
	if r, err := c.Session.State.Role(c.GuildID(), v.roleID); err == nil {
		v.role = r
		c.opts[name] = v
		return r
	}
	roles, err := c.Session.GuildRoles(c.GuildID())
	if err == nil {
		for _, r := range roles {
			if r.ID == v.roleID {
				v.role = r
				c.opts[name] = v
				return r
			}
		}
	}
	return &discordgo.Role{ID: v.roleID}
}

// --- 応答 ---

// Reply は通常の応答を送ります。
func (c *Context) Reply(content string) error {
	if c.interaction != nil {
		return c.Session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: content},
		})
	}
	msg, err := c.Session.ChannelMessageSendReply(c.message.ChannelID, content, c.message.Reference())
	if err == nil {
		c.replyMsg = msg
	}
	return err
}

// ReplyEmbed は埋め込みで応答します。
func (c *Context) ReplyEmbed(embeds ...*discordgo.MessageEmbed) error {
	if c.interaction != nil {
		return c.Session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Embeds: embeds},
		})
	}
	msg, err := c.Session.ChannelMessageSendComplex(c.message.ChannelID, &discordgo.MessageSend{
		Embeds:    embeds,
		Reference: c.message.Reference(),
	})
	if err == nil {
		c.replyMsg = msg
	}
	return err
}

// ReplyEphemeral は本人だけに見える応答を送ります。
// 従来型コマンドにはエフェメラルがないため、通常の返信になります。
func (c *Context) ReplyEphemeral(content string) error {
	if c.interaction != nil {
		return c.Session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
	msg, err := c.Session.ChannelMessageSendReply(c.message.ChannelID, content, c.message.Reference())
	if err == nil {
		c.replyMsg = msg
	}
	return err
}

// ReplyComponents はボタンなどのコンポーネント付きで応答します。
func (c *Context) ReplyComponents(content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	if c.interaction != nil {
		return c.Session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    content,
				Embeds:     embeds,
				Components: components,
			},
		})
	}
	msg, err := c.Session.ChannelMessageSendComplex(c.message.ChannelID, &discordgo.MessageSend{
		Content:    content,
		Embeds:     embeds,
		Components: components,
		Reference:  c.message.Reference(),
	})
	if err == nil {
		c.replyMsg = msg
	}
	return err
}

// Defer は時間のかかる処理の前に呼び、あとで EditReply で結果を返します。
func (c *Context) Defer() error {
	c.deferred = true
	if c.interaction != nil {
		return c.Session.InteractionRespond(c.interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		})
	}
	return c.Session.ChannelTyping(c.message.ChannelID)
}

// EditReply はDefer後の応答、または直前の応答を書き換えます。
func (c *Context) EditReply(content string) error {
	if c.interaction != nil {
		_, err := c.Session.InteractionResponseEdit(c.interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}
	if c.replyMsg != nil {
		_, err := c.Session.ChannelMessageEdit(c.replyMsg.ChannelID, c.replyMsg.ID, content)
		return err
	}
	msg, err := c.Session.ChannelMessageSendReply(c.message.ChannelID, content, c.message.Reference())
	if err == nil {
		c.replyMsg = msg
	}
	return err
}

// EditReplyEmbed はDefer後の応答を埋め込みで書き換えます。
func (c *Context) EditReplyEmbed(embeds ...*discordgo.MessageEmbed) error {
	if c.interaction != nil {
		_, err := c.Session.InteractionResponseEdit(c.interaction.Interaction, &discordgo.WebhookEdit{
			Embeds: &embeds,
		})
		return err
	}
	if c.replyMsg != nil {
		_, err := c.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:      c.replyMsg.ID,
			Channel: c.replyMsg.ChannelID,
			Embeds:  &embeds,
		})
		return err
	}
	msg, err := c.Session.ChannelMessageSendComplex(c.message.ChannelID, &discordgo.MessageSend{
		Embeds:    embeds,
		Reference: c.message.Reference(),
	})
	if err == nil {
		c.replyMsg = msg
	}
	return err
}
