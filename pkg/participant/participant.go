// Package participant derives the presentation of a meeting participant:
// the status category of its badge and the initials shown in its avatar.
package participant

import (
	"strings"

	"github.com/pershin-daniil/BoardMeetings/pkg/models"
)

type Category string

const (
	CategoryNeutral  Category = "neutral"
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
)

var badgeClasses = map[Category]string{
	CategoryNeutral:  "bg-warning",
	CategoryPositive: "bg-success",
	CategoryNegative: "bg-danger",
}

// Classify is total: any status other than attending or not attending is neutral.
func Classify(status models.ResponseStatus) Category {
	switch status {
	case models.StatusAttending:
		return CategoryPositive
	case models.StatusNotAttending:
		return CategoryNegative
	default:
		return CategoryNeutral
	}
}

func (c Category) BadgeClass() string {
	if class, ok := badgeClasses[c]; ok {
		return class
	}
	return badgeClasses[CategoryNeutral]
}

func Initials(fullName string) string {
	parts := strings.Split(fullName, " ")
	if len(parts) < 2 {
		return strings.ToUpper(firstRunes(fullName, 2))
	}
	return strings.ToUpper(firstRunes(parts[0], 1) + firstRunes(parts[len(parts)-1], 1))
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// Badge is what the creation view renders for one participant.
type Badge struct {
	FullName string
	Initials string
	Category Category
}

func NewBadge(p models.Participant) Badge {
	return Badge{
		FullName: p.FullName,
		Initials: Initials(p.FullName),
		Category: Classify(p.Status),
	}
}

func Badges(participants []models.Participant) []Badge {
	badges := make([]Badge, 0, len(participants))
	for _, p := range participants {
		badges = append(badges, NewBadge(p))
	}
	return badges
}
