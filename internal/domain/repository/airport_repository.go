package repository

import (
	"context"

	"github.com/airport-locator/internal/domain"
)

// AirportRepository - источник справочных данных об аэропортах и городах.
// Только чтение; все записи уже провалидированы (domain.Airport.Validate).
// Пустой isoCountry означает отсутствие фильтра по стране.
type AirportRepository interface {
	// FindAirportByCode ищет активный аэропорт по IATA коду (без учёта регистра).
	// При нескольких совпадениях возвращает первый по identifier. nil - не найден.
	FindAirportByCode(ctx context.Context, code, isoCountry string) (*domain.Airport, error)

	// FindCityCentroid ищет город по подстроке названия и возвращает его центроид.
	// nil - город не найден или у него нет координаты.
	FindCityCentroid(ctx context.Context, name, isoCountry string) (*domain.Coordinate, error)

	// ListActiveAirports возвращает активные аэропорты, упорядоченные по identifier
	ListActiveAirports(ctx context.Context, isoCountry string) ([]domain.Airport, error)
}
