// Package models содержит доменные структуры маршрута поездки:
// сам маршрут (дата старта и карта дней), детали одного дня
// и фиксированный набор категорий событий.
package models

import (
	"fmt"
	"time"
)

// DaysInTrip — длина окна поездки в днях.
const DaysInTrip = 25

// NightsInTrip — количество ночей в окне поездки.
const NightsInTrip = 24

// DateKeyFormat — формат ключа дня в карте days (YYYY-MM-DD).
const DateKeyFormat = "2006-01-02"

// EventCategories — допустимые категории события дня.
var EventCategories = []string{"transport", "accommodation", "activity", "food", "other"}

// EventWithCategory описывает событие дня: обязательный текст
// и необязательная категория из фиксированного набора.
type EventWithCategory struct {
	Text     string `json:"text" validate:"required"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=transport accommodation activity food other"`
}

// DayDetails описывает содержимое одного дня маршрута.
// Все поля независимо опциональны; пустая структура эквивалентна
// отсутствию дня, но может храниться как пустой объект.
type DayDetails struct {
	Event  *EventWithCategory `json:"event,omitempty"`
	Notes  string             `json:"notes,omitempty"`
	Budget *float64           `json:"budget,omitempty" validate:"omitempty,gte=0"`
}

// Itinerary — маршрут поездки: дата старта (пустая строка означает
// "не задана") и карта дней по ключу YYYY-MM-DD. Ключи могут лежать
// вне 25-дневного окна — такие дни хранятся, но не отображаются.
type Itinerary struct {
	StartDate string                `json:"startDate"`
	Days      map[string]DayDetails `json:"days" validate:"dive"`
}

// EmptyItinerary возвращает корректный пустой маршрут, который
// получает клиент, пока запись в хранилище отсутствует.
func EmptyItinerary() Itinerary {
	return Itinerary{
		StartDate: "",
		Days:      map[string]DayDetails{},
	}
}

// Validate проверяет маршрут и возвращает список нарушений.
// Валидируются формат даты старта и ключей карты дней, непустой текст
// события, категория и неотрицательный бюджет. Пустой список означает
// валидный маршрут.
func (i Itinerary) Validate() []string {
	var violations []string
	if i.StartDate != "" {
		if _, err := time.Parse(DateKeyFormat, i.StartDate); err != nil {
			violations = append(violations, fmt.Sprintf("start date %q is not a date in format 2006-01-02", i.StartDate))
		}
	}
	for key, day := range i.Days {
		if _, err := time.Parse(DateKeyFormat, key); err != nil {
			violations = append(violations, fmt.Sprintf("day key %q is not a date in format 2006-01-02", key))
		}
		if day.Event != nil {
			if day.Event.Text == "" {
				violations = append(violations, fmt.Sprintf("day %s: event text must not be empty", key))
			}
			if day.Event.Category != "" && !isKnownCategory(day.Event.Category) {
				violations = append(violations, fmt.Sprintf("day %s: unknown event category %q", key, day.Event.Category))
			}
		}
		if day.Budget != nil && *day.Budget < 0 {
			violations = append(violations, fmt.Sprintf("day %s: budget must not be negative", key))
		}
	}
	return violations
}

func isKnownCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

// TripDates возвращает все ключи дней 25-дневного окна, начиная
// с startDate. Для пустой или некорректной даты старта возвращает nil.
func TripDates(startDate string) []string {
	start, err := time.Parse(DateKeyFormat, startDate)
	if err != nil {
		return nil
	}
	dates := make([]string, 0, DaysInTrip)
	for i := 0; i < DaysInTrip; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateKeyFormat))
	}
	return dates
}
