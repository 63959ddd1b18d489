package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

const requestTimeout = 5 * time.Second

type App interface {
	ListMeetings(ctx context.Context) ([]models.Meeting, error)
}

// Telegram lets a chat browse the meeting list.
type Telegram struct {
	log *logrus.Entry
	bot *tele.Bot
	app App
}

// Notifier posts meeting notifications to one chat.
type Notifier struct {
	log  *logrus.Entry
	bot  *tele.Bot
	chat tele.ChatID
}

func NewNotifier(log *logrus.Logger, bot *tele.Bot, chatID int64) *Notifier {
	return &Notifier{
		log:  log.WithField("component", "telegram-notifier"),
		bot:  bot,
		chat: tele.ChatID(chatID),
	}
}

func New(log *logrus.Logger, bot *tele.Bot, app App) *Telegram {
	t := Telegram{
		log: log.WithField("component", "telegram"),
		bot: bot,
		app: app,
	}
	t.initHandlers()
	return &t
}

func NewBot(token string) (*tele.Bot, error) {
	config := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(config)
	if err != nil {
		return nil, fmt.Errorf("new bot failed: %w", err)
	}
	return b, nil
}

func (n *Notifier) Notify(_ context.Context, msg string, meeting models.Meeting) error {
	if _, err := n.bot.Send(n.chat, notification(msg, meeting)); err != nil {
		return fmt.Errorf("tg send notification failed: %w", err)
	}
	n.log.Debugf("notified chat %d about meeting %s", n.chat, meeting.Reference.ID)
	return nil
}

func (t *Telegram) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		t.bot.Stop()
	}()
	t.log.Infof("Starting telegram bot as %v", t.bot.Me.Username)
	t.bot.Start()
}
