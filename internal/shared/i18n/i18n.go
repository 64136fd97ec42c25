// Package i18n renders user-facing labels through an x/text message catalog.
// English is the fallback; Russian matches the labels the console always showed.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
)

const DefaultLocale = "ru"

var (
	supported = []language.Tag{language.English, language.Russian}
	matcher   = language.NewMatcher(supported)
	builder   = catalog.NewBuilder(catalog.Fallback(language.English))
)

func statusKey(s vo.TicketStatus) string {
	return "status." + s.String()
}

func init() {
	labels := map[language.Tag]map[vo.TicketStatus]string{
		language.English: {
			vo.StatusOpen:       "Open",
			vo.StatusInProgress: "In progress",
			vo.StatusClosed:     "Closed",
		},
		language.Russian: {
			vo.StatusOpen:       "Открыта",
			vo.StatusInProgress: "В работе",
			vo.StatusClosed:     "Закрыта",
		},
	}
	for tag, byStatus := range labels {
		for status, label := range byStatus {
			if err := builder.SetString(tag, statusKey(status), label); err != nil {
				panic(err)
			}
		}
	}
}

// Localizer formats labels for one locale. The zero value is not usable.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer accepts a BCP 47 tag or an Accept-Language header value.
// Unknown or empty locales resolve to the closest supported language.
func NewLocalizer(locale string) *Localizer {
	if locale == "" {
		locale = DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.Make(DefaultLocale)}
	}
	_, idx, _ := matcher.Match(tags...)
	tag := supported[idx]
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

func (l *Localizer) Language() string {
	return l.tag.String()
}

// StatusLabel returns the display label; unknown statuses echo their name.
func (l *Localizer) StatusLabel(s vo.TicketStatus) string {
	if !s.IsValid() {
		return s.String()
	}
	return l.printer.Sprintf(message.Key(statusKey(s), s.String()))
}

// StatusOptions lists statuses with labels in workflow order.
func (l *Localizer) StatusOptions() []StatusOption {
	statuses := vo.AllStatuses()
	opts := make([]StatusOption, 0, len(statuses))
	for _, s := range statuses {
		opts = append(opts, StatusOption{Value: s.String(), Label: l.StatusLabel(s)})
	}
	return opts
}

type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
