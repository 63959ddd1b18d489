package meetingform

import (
	"time"

	"github.com/goodsign/monday"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

const (
	previewDateLayout = "02. January 2006"
	previewLocale     = monday.LocaleNbNO
)

type Preview struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// NewPreview renders the creation view header. It reflects the input as is,
// valid or not.
func NewPreview(title string, date time.Time, startTime, endTime string) Preview {
	return Preview{
		Title:    title,
		Subtitle: FormatDate(date) + " " + startTime + " - " + endTime,
	}
}

func PreviewOf(form models.CreateMeetingForm) Preview {
	return NewPreview(form.Title, form.Date, form.StartTime, form.EndTime)
}

func FormatDate(date time.Time) string {
	return monday.Format(date, previewDateLayout, previewLocale)
}
