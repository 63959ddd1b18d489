package telegram

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/pershin-daniil/BoardMeetings/pkg/meetinglist"
)

var (
	viewBtn   = tele.Btn{Unique: "view"}
	toggleBtn = tele.Btn{Unique: "toggle"}
)

func listMarkup(state meetinglist.State, hasMore bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := []tele.Row{menu.Row(
		menu.Data(meetinglist.ViewActive.Title(), viewBtn.Unique, meetinglist.ViewActive.String()),
		menu.Data(meetinglist.ViewArchived.Title(), viewBtn.Unique, meetinglist.ViewArchived.String()),
	)}
	if hasMore {
		rows = append(rows, menu.Row(menu.Data(state.ToggleLabel(), toggleBtn.Unique, encodeState(state))))
	}
	menu.Inline(rows...)
	return menu
}

func encodeState(state meetinglist.State) string {
	if state.ShowAll {
		return state.View.String() + "|all"
	}
	return state.View.String()
}

func decodeState(data string) meetinglist.State {
	view, flag, _ := strings.Cut(data, "|")
	return meetinglist.State{View: meetinglist.ParseView(view), ShowAll: flag == "all"}
}
