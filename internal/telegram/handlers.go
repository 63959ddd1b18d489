package telegram

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/pershin-daniil/BoardMeetings/pkg/meetinglist"
	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

const cmdStart = "/start"

func (t *Telegram) initHandlers() {
	t.bot.Handle(cmdStart, t.startHandler)
	t.bot.Handle("/meetings", t.startHandler)
	t.bot.Handle(&viewBtn, t.viewHandler)
	t.bot.Handle(&toggleBtn, t.toggleHandler)
}

func (t *Telegram) startHandler(c tele.Context) error {
	text, markup, err := t.page(meetinglist.State{})
	if err != nil {
		return err
	}
	return c.Send(text, markup)
}

func (t *Telegram) viewHandler(c tele.Context) error {
	state := meetinglist.State{}.SwitchView(meetinglist.ParseView(c.Data()))
	return t.edit(c, state)
}

func (t *Telegram) toggleHandler(c tele.Context) error {
	return t.edit(c, decodeState(c.Data()).Toggle())
}

func (t *Telegram) edit(c tele.Context, state meetinglist.State) error {
	text, markup, err := t.page(state)
	if err != nil {
		return err
	}
	if err = c.Edit(text, markup); err != nil {
		return fmt.Errorf("tg edit message failed: %w", err)
	}
	return c.Respond()
}

func (t *Telegram) page(state meetinglist.State) (string, *tele.ReplyMarkup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	meetings, err := t.app.ListMeetings(ctx)
	if err != nil {
		t.log.Warnf("err listing meetings: %v", err)
		return "", nil, fmt.Errorf("tg list meetings failed: %w", err)
	}
	page := meetinglist.NewPage(meetings, state)
	return formatPage(page), listMarkup(state, len(page.Hidden) > 0), nil
}

func formatPage(page meetinglist.Page) string {
	var b strings.Builder
	b.WriteString(page.State.View.Title())
	if page.Total() == 0 {
		b.WriteString("\nIngen møter")
		return b.String()
	}
	shown := page.Visible
	if page.State.ShowAll {
		shown = append(append([]models.Meeting{}, page.Visible...), page.Hidden...)
	}
	for _, m := range shown {
		b.WriteString("\n")
		b.WriteString(formatMeeting(m))
	}
	return b.String()
}

func formatMeeting(m models.Meeting) string {
	line := fmt.Sprintf("• %s, %s - %s", m.Title, m.Start.Format("02.01.2006 15:04"), m.End.Format("15:04"))
	if m.Draft {
		line += " (utkast)"
	}
	return line
}

func notification(msg string, m models.Meeting) string {
	return msg + "\n" + formatMeeting(m)
}
