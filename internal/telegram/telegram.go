package telegram

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Settings struct {
	Token  string
	Client *http.Client
}

// Telegram 周报推送机器人
type Telegram struct {
	logger   *zap.Logger
	settings Settings
	client   *tele.Bot
}

type Option func(telegram *Telegram)

func NewTelegram(logger *zap.Logger, settings Settings, options ...Option) (*Telegram, error) {
	poller := &tele.LongPoller{Timeout: 10 * time.Second}

	client, err := tele.NewBot(tele.Settings{
		ParseMode: tele.ModeMarkdownV2,
		Token:     settings.Token,
		Poller:    poller,
		Client:    settings.Client,
	})
	if err != nil {
		return nil, err
	}

	client.Use(middleware.AutoRespond())

	err = client.SetCommands([]tele.Command{
		{Text: "/start", Description: "Link this chat to your PipVault digest"},
		{Text: "/help", Description: "How the weekly digest works"},
	})
	if err != nil {
		return nil, err
	}

	bot := &Telegram{
		logger:   logger,
		settings: settings,
		client:   client,
	}
	client.Handle("/start", bot.onStart)
	client.Handle("/help", bot.onHelp)

	for _, option := range options {
		option(bot)
	}

	return bot, nil
}

// onStart 回复 chat id，用户把它填到设置页即可开启周报
func (r *Telegram) onStart(c tele.Context) error {
	chatId := c.Chat().ID
	r.logger.Info("telegram chat started", zap.Int64("chat_id", chatId))
	return c.Send(StartMessage(chatId))
}

func (r *Telegram) onHelp(c tele.Context) error {
	return c.Send(EscapeMarkdownV2(helpText))
}

const helpText = "Paste your chat id into Settings > Notifications and enable the weekly digest. " +
	"Every week you will receive your net PnL, win rate and profit factor for the last 7 days."

func StartMessage(chatId int64) string {
	return fmt.Sprintf("Your chat id is `%d`\n%s", chatId,
		EscapeMarkdownV2("Paste it into Settings > Notifications to receive the weekly digest."))
}

func (r *Telegram) Start() {
	go r.client.Start()
}

func (r *Telegram) Stop() {
	r.client.Stop()
}

// Notify msg 必须已经按 MarkdownV2 转义
func (r *Telegram) Notify(chatId, msg string) error {
	_chatId := cast.ToInt64(chatId)
	if _chatId == 0 {
		return fmt.Errorf("invalid telegram chat id: %q", chatId)
	}
	_, err := r.client.Send(tele.ChatID(_chatId), msg, &tele.SendOptions{ParseMode: tele.ModeMarkdownV2})
	return err
}
