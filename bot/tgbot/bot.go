package tgbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/safartours/safarserver/bot/botstorage"
	botmodel "github.com/safartours/safarserver/bot/model"
	"github.com/safartours/safarserver/internal/config"
	"github.com/safartours/safarserver/internal/domain"
	"github.com/safartours/safarserver/internal/service"
	"github.com/sirupsen/logrus"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	bot *tgbotapi.BotAPI

	botStorage botstorage.BotStorage
	log        *logrus.Entry

	// ctx governs the update loop; cancel is assigned in New so that Stop
	// is safe to call from another goroutine, before or after Run.
	ctx    context.Context
	cancel func()

	subs subscriptions

	commands *Commands
}

var ErrBadRequest = errors.New("unknown command")

func New(cs *service.CatalogService, bs botstorage.BotStorage, cfg config.Config, log *logrus.Logger) (Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TgBot.TelegramApiToken)
	if err != nil {
		return Bot{}, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}

	bot.Debug = cfg.Server.Debug
	_, err = bot.GetMe()
	if err != nil {
		return Bot{}, err
	}
	subs := newSubs()
	users, err := bs.ListUsers()
	if err != nil {
		return Bot{}, err
	}
	for i := range users {
		for _, subType := range users[i].Subscriptions {
			subs.Add(subType, users[i].ID)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := Bot{
		bot:        bot,
		botStorage: bs,
		log:        log.WithField("name", "tg_bot"),
		ctx:        ctx,
		cancel:     cancel,
		subs:       subs,
	}

	b.commands = NewCommands(
		cs,
		bs,
		cfg.TgBot.AdminPass,
		func(id int) {
			b.subs.Add(botmodel.NewInquiry, id)
		},
		func(id int) {
			b.subs.Remove(botmodel.NewInquiry, id)
		},
	)

	return b, nil
}

func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-b.ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(update)
		}
	}
}

func (b *Bot) handleMessage(update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	tgUser := update.SentFrom()
	if tgUser == nil {
		return
	}
	log := b.log.WithFields(map[string]interface{}{
		"user_id": tgUser.ID,
		"text":    update.Message.Text,
	})
	user, err := b.botStorage.GetUser(int(tgUser.ID))
	if err != nil {
		user, err = b.botStorage.NewUser(botmodel.User{
			ID:        int(tgUser.ID),
			FirstName: tgUser.FirstName,
			Username:  tgUser.UserName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		if err != nil {
			log.WithError(err).Error("unable to get user from db")
			return
		}
	}

	err = b.botStorage.Log(user, update.Message.Text)
	if err != nil {
		log.WithError(err).Error("Can't log to db")
	}

	cmd, args, _ := strings.Cut(strings.TrimPrefix(update.Message.Text, "/"), " ")

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	text, err := b.commands.RunCommand(user, cmd, args)
	if err != nil {
		text = err.Error()
	}
	msg.Text = text
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
		return
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

// NotifyNewInquiry pushes a new-lead message to every subscribed chat.
// Delivery happens off the caller's goroutine so a slow Telegram API never
// delays inquiry creation.
func (b *Bot) NotifyNewInquiry(inq domain.Inquiry) {
	var buffer strings.Builder
	buffer.WriteString("New inquiry for ")
	buffer.WriteString(inq.PackageTitle)
	buffer.WriteString("\n")
	buffer.WriteString(inq.Name)
	buffer.WriteString(" (")
	buffer.WriteString(inq.Phone)
	buffer.WriteString(", ")
	buffer.WriteString(inq.Email)
	buffer.WriteString(")\n")
	buffer.WriteString(inq.Message)
	go b.sendEventNotification(botmodel.NewInquiry, buffer.String())
}

func (b *Bot) sendEventNotification(event botmodel.EventType, text string) {
	for _, userID := range b.subs.GetUserIDs(event) {
		msg := tgbotapi.NewMessage(int64(userID), text)
		if _, err := b.bot.Send(msg); err != nil {
			log.Println("BOT ERROR", err.Error())
			return
		}
	}
}
