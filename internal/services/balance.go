package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/rhythm/internal/models"
)

type CategoryShare struct {
	CategoryID uint    `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

// BalanceForRange splits the scheduled minutes of occurrences by category.
// Shares are sorted by minutes descending, then category id.
func BalanceForRange(occurrences []models.Occurrence, categories map[uint]models.Category) []CategoryShare {
	minutesByCategory := make(map[uint]int)
	total := 0
	for _, entry := range occurrences {
		if entry.DurationMinutes <= 0 {
			continue
		}
		minutesByCategory[entry.CategoryID] += entry.DurationMinutes
		total += entry.DurationMinutes
	}
	if total == 0 {
		return []CategoryShare{}
	}

	shares := make([]CategoryShare, 0, len(minutesByCategory))
	for categoryID, minutes := range minutesByCategory {
		category, ok := categories[categoryID]
		if !ok {
			category = models.Category{Name: models.UncategorizedName, Color: models.UncategorizedColor}
		}
		shares = append(shares, CategoryShare{
			CategoryID: categoryID,
			Name:       category.Name,
			Color:      category.Color,
			Minutes:    minutes,
			Percentage: math.Round(float64(minutes)*1000/float64(total)) / 10,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Minutes == shares[j].Minutes {
			return shares[i].CategoryID < shares[j].CategoryID
		}
		return shares[i].Minutes > shares[j].Minutes
	})
	return shares
}

// FlattenDays returns the occurrences of every day in order.
func FlattenDays(days []DayOccurrences) []models.Occurrence {
	flattened := make([]models.Occurrence, 0)
	for _, day := range days {
		flattened = append(flattened, day.Occurrences...)
	}
	return flattened
}
