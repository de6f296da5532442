package services

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/terraincognita07/rhythm/internal/models"
)

const icsProductID = "-//rhythm//calendar export//EN"

// occurrenceNamespace scopes export UIDs so the same occurrence always maps
// to the same UID across exports.
var occurrenceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("rhythm:occurrence"))

type ExportService struct {
	now func() time.Time
}

func NewExportService(now func() time.Time) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{now: now}
}

// BuildICS renders occurrences as a VCALENDAR document.
func (service *ExportService) BuildICS(occurrences []models.Occurrence, categories map[uint]models.Category) string {
	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId(icsProductID)
	calendar.SetXWRCalName("rhythm")

	stamp := service.now().UTC()
	for _, entry := range occurrences {
		event := calendar.AddEvent(OccurrenceUID(entry))
		event.SetDtStampTime(stamp)
		event.SetSummary(entry.Name)

		day := CalendarDay(entry.Date)
		if entry.AllDay {
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(AddDays(day, 1))
		} else {
			start := day.Add(time.Duration(entry.Hour)*time.Hour + time.Duration(entry.Minute)*time.Minute)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(time.Duration(entry.DurationMinutes) * time.Minute))
		}

		category, ok := categories[entry.CategoryID]
		if !ok {
			category = models.Category{Name: models.UncategorizedName, Color: models.UncategorizedColor}
		}
		event.AddProperty(ics.ComponentPropertyCategories, category.Name)
		event.SetColor(category.Color)

		event.SetStatus(ics.ObjectStatusConfirmed)
	}
	return calendar.Serialize()
}

// OccurrenceUID derives a stable UID from the occurrence's series key.
func OccurrenceUID(entry models.Occurrence) string {
	key := fmt.Sprintf("%s|%s|%02d", entry.Name, FormatDay(entry.Date), entry.Hour)
	return uuid.NewSHA1(occurrenceNamespace, []byte(key)).String() + "@rhythm"
}
