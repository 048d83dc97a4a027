package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/robfig/cron/v3"

	"logiq/ai"
	"logiq/commands"
	"logiq/config"
	"logiq/handlers/events"
	"logiq/interfaces"
	"logiq/player"
	"logiq/storage"
)

// ディスパッチ時の定型応答
const (
	noPermissionText   = "You don't have permission to use this command."
	guildOnlyText      = "This command can only be used in a server."
	moduleDisabledText = "This module is disabled on this server."
)

// Bot はDiscordセッションと各サブシステムを束ねる中核です。
type Bot struct {
	Session   *discordgo.Session
	Log       interfaces.Logger
	Store     interfaces.DataStore
	Scheduler interfaces.Scheduler
	AI        *ai.Client
	Player    *player.Manager

	commandHandlers   map[string]commands.CommandHandler
	componentHandlers map[string]commands.CommandHandler
	aliases           map[string]string
	defs              []*discordgo.ApplicationCommand

	xp        *XPBatcher
	startTime time.Time
}

// New はセッションを初期化し、コマンドとイベントハンドラを配線します。
// この時点ではまだDiscordへは接続しません。
func New(log interfaces.Logger, store interfaces.DataStore, aiClient *ai.Client) (*Bot, error) {
	token := config.Cfg.Bot.Token
	if token == "" {
		return nil, errors.New("DiscordのBotトークンが設定されていません")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("セッションの作成に失敗しました: %w", err)
	}
	dg.State.MaxMessageCount = 2000
	dg.Identify.Intents = discordgo.IntentsAll

	b := &Bot{
		Session:   dg,
		Log:       log,
		Store:     store,
		Scheduler: cron.New(),
		AI:        aiClient,
		Player:    player.NewManager(dg, log),
		startTime: time.Now(),
	}
	b.xp = NewXPBatcher(log, store, b.announceLevelUp)

	appCtx := &commands.AppContext{
		Log:       log,
		Store:     store,
		AI:        aiClient,
		Player:    b.Player,
		StartTime: b.startTime,
	}
	b.commandHandlers, b.componentHandlers, b.aliases, b.defs = commands.RegisterCommands(appCtx)

	b.registerEventHandlers()
	return b, nil
}

func (b *Bot) registerEventHandlers() {
	events.NewReadyHandler(b.Log).Register(b.Session)
	events.NewMemberHandler(b.Log, b.Store).Register(b.Session)
	events.NewMessageHandler(b.Log, b.Store, b.AI, b.xp, b.isCommandMessage).Register(b.Session)
	events.NewReactionHandler(b.Log, b.Store).Register(b.Session)
	events.NewVoiceHandler(b.Log, b.Store).Register(b.Session)
	events.NewChannelHandler(b.Log, b.Store).Register(b.Session)
	events.NewRoleHandler(b.Log, b.Store).Register(b.Session)

	b.Session.AddHandler(b.onInteractionCreate)
	b.Session.AddHandler(b.onMessageCreate)
}

func (b *Bot) Name() string { return "discord bot" }

// StartTime はプロセスの起動時刻を返します。稼働時間の表示に使います。
func (b *Bot) StartTime() time.Time { return b.startTime }

// Start はDiscordへ接続し、スラッシュコマンドを登録して定期処理を動かします。
func (b *Bot) Start() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("Discordへの接続に失敗しました: %w", err)
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", b.defs); err != nil {
		// スラッシュ登録に失敗しても従来型コマンドは動かせる
		b.Log.Error("Failed to register slash commands", "error", err)
	} else {
		b.Log.Info("Slash commands registered", "count", len(b.defs))
	}

	b.registerCronJobs()
	b.Scheduler.Start()
	b.xp.Start()
	return nil
}

// Stop は定期処理を止めて未書き込みのXPを書き出し、Discordから切断します。
func (b *Bot) Stop() {
	ctx := b.Scheduler.Stop()
	<-ctx.Done()

	b.xp.Stop()

	if err := b.Session.Close(); err != nil {
		b.Log.Error("Failed to close Discord session", "error", err)
	}
	b.Log.Info("Bot stopped")
}

func (b *Bot) registerCronJobs() {
	jobs := []struct {
		spec string
		name string
		fn   func()
	}{
		{"* * * * *", "reminders", b.sweepReminders},
		{"* * * * *", "giveaways", b.sweepGiveaways},
		{"*/5 * * * *", "social feeds", b.pollSocialFeeds},
		{"*/5 * * * *", "dashboards", b.refreshDashboards},
	}
	for _, job := range jobs {
		if _, err := b.Scheduler.AddFunc(job.spec, job.fn); err != nil {
			b.Log.Error("Failed to schedule job", "error", err, "job", job.name)
		}
	}
}

// sweepReminders は期限の来たリマインダーを配送して消し込みます。
func (b *Bot) sweepReminders() {
	due, err := b.Store.GetDueReminders(time.Now())
	if err != nil {
		b.Log.Error("Failed to fetch due reminders", "error", err)
		return
	}
	for _, r := range due {
		msg := fmt.Sprintf("⏰ <@%s> Reminder: %s", r.UserID, r.Message)
		if _, err := b.Session.ChannelMessageSend(r.ChannelID, msg); err != nil {
			b.Log.Warn("Failed to deliver reminder", "error", err, "reminderID", r.ID, "channelID", r.ChannelID)
		}
		if err := b.Store.CompleteReminder(r.ID); err != nil {
			b.Log.Error("Failed to complete reminder", "error", err, "reminderID", r.ID)
		}
	}
}

// sweepGiveaways は締め切りを過ぎたギブアウェイを抽選します。
func (b *Bot) sweepGiveaways() {
	due, err := b.Store.GetDueGiveaways(time.Now())
	if err != nil {
		b.Log.Error("Failed to fetch due giveaways", "error", err)
		return
	}
	for i := range due {
		commands.FinishGiveaway(b.Session, b.Store, b.Log, &due[i])
	}
}

// refreshDashboards は全ギルドのダッシュボードを描き直します。
// 設定のないギルドは中で読み飛ばされます。
func (b *Bot) refreshDashboards() {
	for _, g := range b.Session.State.Guilds {
		commands.RefreshDashboard(b.Session, b.Store, b.Log, g.ID)
	}
}

// announceLevelUp はレベルアップを最後に発言したチャンネルへ知らせます。
func (b *Bot) announceLevelUp(up storage.LevelUp) {
	msg := fmt.Sprintf("🎉 <@%s> reached **level %d**!", up.UserID, up.Level)
	if _, err := b.Session.ChannelMessageSend(up.ChannelID, msg); err != nil {
		b.Log.Warn("Failed to announce level up", "error", err, "channelID", up.ChannelID)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		handler, ok := b.commandHandlers[name]
		if !ok {
			b.Log.Warn("Received an unknown slash command", "command", name)
			return
		}
		if i.GuildID != "" && b.moduleDisabled(i.GuildID, handler.GetCategory()) {
			b.respondEphemeral(s, i, moduleDisabledText)
			return
		}
		handler.Handle(commands.NewInteractionContext(s, i))

	case discordgo.InteractionMessageComponent:
		if handler := b.matchComponent(i.MessageComponentData().CustomID); handler != nil {
			handler.HandleComponent(s, i)
		}

	case discordgo.InteractionModalSubmit:
		if handler := b.matchComponent(i.ModalSubmitData().CustomID); handler != nil {
			handler.HandleModal(s, i)
		}
	}
}

// matchComponent はカスタムIDからハンドラを引きます。
// 動的なIDはコマンドが前方一致で宣言しているため、完全一致の後に前方一致を試します。
func (b *Bot) matchComponent(customID string) commands.CommandHandler {
	if handler, ok := b.componentHandlers[customID]; ok {
		return handler
	}
	for id, handler := range b.componentHandlers {
		if strings.HasPrefix(customID, id) {
			return handler
		}
	}
	return nil
}

// onMessageCreate は従来型のプレフィックスコマンドを解釈して実行します。
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.WebhookID != "" {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	prefix := b.guildPrefix(m.GuildID)
	rest, ok := matchPrefix(m.Content, prefix, b.botID())
	if !ok || rest == "" {
		return
	}

	tokens, err := shellwords.Parse(rest)
	if err != nil {
		// 閉じていない引用符などは素朴な空白分割で拾い直す
		tokens = strings.Fields(rest)
	}
	if len(tokens) == 0 {
		return
	}

	handler, ok := b.resolveCommand(tokens[0])
	if !ok {
		// 未知の名前は打ち間違いの可能性が高いので黙って無視する
		return
	}
	def := handler.GetCommandDef()

	if m.GuildID == "" {
		if def.DMPermission != nil && !*def.DMPermission {
			b.replyText(s, m, guildOnlyText)
			return
		}
	} else {
		if b.moduleDisabled(m.GuildID, handler.GetCategory()) {
			b.replyText(s, m, moduleDisabledText)
			return
		}
		if !b.memberHasPermission(s, m, def.DefaultMemberPermissions) {
			b.replyText(s, m, noPermissionText)
			return
		}
	}

	ctx, err := commands.NewMessageContext(s, m, def, prefix, tokens[1:])
	if err != nil {
		b.replyArgError(s, m, handler, prefix, err)
		return
	}
	handler.Handle(ctx)
}

// replyArgError は引数の解釈に失敗した理由をユーザーへ返します。
func (b *Bot) replyArgError(s *discordgo.Session, m *discordgo.MessageCreate, handler commands.CommandHandler, prefix string, err error) {
	usage := ""
	if u := commands.Usage(handler); u != "" {
		usage = fmt.Sprintf("\nUsage: `%s%s`", prefix, u)
	}

	var (
		missing    *commands.MissingArgumentError
		invalid    *commands.InvalidArgumentError
		unknownSub *commands.UnknownSubcommandError
	)
	switch {
	case errors.As(err, &missing):
		b.replyText(s, m, fmt.Sprintf("Missing required argument: `%s`%s", missing.Option, usage))
	case errors.As(err, &invalid):
		b.replyText(s, m, fmt.Sprintf("❌ Invalid value for `%s`: %s%s", invalid.Option, invalid.Reason, usage))
	case errors.As(err, &unknownSub):
		b.replyText(s, m, fmt.Sprintf("❌ Unknown subcommand `%s`. Valid subcommands: %s", unknownSub.Given, strings.Join(unknownSub.Valid, ", ")))
	default:
		b.Log.Warn("Failed to parse command arguments", "error", err, "command", handler.GetCommandDef().Name)
		b.replyText(s, m, "❌ Could not parse that command."+usage)
	}
}

// memberHasPermission は従来型コマンドの実行権限を判定します。
// スラッシュ経由はDiscord側がDefaultMemberPermissionsで制御するため、
// ここで見るのはテキスト経由の呼び出しだけです。
func (b *Bot) memberHasPermission(s *discordgo.Session, m *discordgo.MessageCreate, required *int64) bool {
	if required == nil || *required == 0 {
		return true
	}
	if config.Cfg.Bot.OwnerID != "" && m.Author.ID == config.Cfg.Bot.OwnerID {
		return true
	}

	perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		perms, err = s.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			b.Log.Warn("Failed to resolve member permissions", "error", err, "userID", m.Author.ID, "channelID", m.ChannelID)
			return false
		}
	}
	return HasPermissions(perms, *required)
}

// moduleDisabled は該当カテゴリがギルドで無効化されているかを返します。
// 管理カテゴリは無効化の対象になりません。
func (b *Bot) moduleDisabled(guildID, category string) bool {
	if category == "" || category == commands.CategoryAdmin {
		return false
	}
	settings, err := b.Store.GetGuildSettings(guildID)
	if err != nil {
		return false
	}
	return settings.ModuleDisabled(category)
}

// resolveCommand は名前か別名からコマンドを引きます。大文字小文字は無視します。
func (b *Bot) resolveCommand(name string) (commands.CommandHandler, bool) {
	name = strings.ToLower(name)
	if handler, ok := b.commandHandlers[name]; ok {
		return handler, true
	}
	if canonical, ok := b.aliases[name]; ok {
		handler, ok := b.commandHandlers[canonical]
		return handler, ok
	}
	return nil, false
}

// isCommandMessage はメッセージが既知のコマンド呼び出しかを返します。
// イベントハンドラがXP付与やメンション雑談の対象から除くために使います。
func (b *Bot) isCommandMessage(guildID, content string) bool {
	rest, ok := matchPrefix(content, b.guildPrefix(guildID), b.botID())
	if !ok || rest == "" {
		return false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}
	_, found := b.resolveCommand(fields[0])
	return found
}

// guildPrefix はギルドのプレフィックスを返します。未設定なら既定値です。
func (b *Bot) guildPrefix(guildID string) string {
	if guildID != "" {
		if settings, err := b.Store.GetGuildSettings(guildID); err == nil && settings.Prefix != "" {
			return settings.Prefix
		}
	}
	return config.Cfg.Bot.Prefix
}

func (b *Bot) botID() string {
	if b.Session.State != nil && b.Session.State.User != nil {
		return b.Session.State.User.ID
	}
	return ""
}

func (b *Bot) replyText(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		b.Log.Warn("Failed to send reply", "error", err, "channelID", m.ChannelID)
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.Log.Warn("Failed to respond to interaction", "error", err)
	}
}
