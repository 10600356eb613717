package client

import "github.com/magabrotheeeer/itinerary-planner/internal/models"

// Псевдонимы доменных типов. Внешний код не может импортировать
// внутренние пакеты, поэтому клиент переэкспортирует всё, что нужно
// для сборки маршрута.
type (
	// Itinerary — маршрут поездки: дата старта и заметки по дням.
	Itinerary = models.Itinerary
	// DayDetails — содержимое одного дня маршрута.
	DayDetails = models.DayDetails
	// EventWithCategory — событие дня с необязательной категорией.
	EventWithCategory = models.EventWithCategory
)

// Продолжительность поездки в днях и формат ключей дат.
const (
	DaysInTrip    = models.DaysInTrip
	DateKeyFormat = models.DateKeyFormat
)

// EventCategories — допустимые категории событий.
var EventCategories = models.EventCategories

// EmptyItinerary возвращает маршрут без даты старта и без дней.
func EmptyItinerary() Itinerary {
	return models.EmptyItinerary()
}

// TripDates возвращает ключи дней окна поездки от даты старта.
// Для пустой или некорректной даты возвращает nil.
func TripDates(startDate string) []string {
	return models.TripDates(startDate)
}
