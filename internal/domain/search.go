package domain

import (
	"fmt"
	"strings"
)

// Unit - единица отображения расстояния
type Unit string

const (
	UnitKm Unit = "km"
	UnitMi Unit = "mi"
)

// ParseUnit разбирает единицу, пустая строка - километры
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnitKm:
		return UnitKm, nil
	case UnitMi:
		return UnitMi, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Limits для количества результатов поиска
const (
	MinSearchLimit     = 1
	MaxSearchLimit     = 10
	DefaultSearchLimit = 3
)

// ClampLimit приводит лимит к [MinSearchLimit, MaxSearchLimit]
func ClampLimit(limit int) int {
	if limit < MinSearchLimit {
		return MinSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// RankedResult - аэропорт с расстоянием до точки запроса.
// Порядок внутри набора результатов - инвариант списка, а не поле.
type RankedResult struct {
	Airport         Airport `json:"airport"`
	DistanceKm      float64 `json:"distanceKm"`
	DistanceDisplay float64 `json:"distanceDisplay"`
	Unit            Unit    `json:"unit"`
}

// ResolvedQuery - нормализованный поисковый запрос, передаётся по значению
type ResolvedQuery struct {
	RawQuery         string
	Coordinate       Coordinate
	ISOCountryFilter string
	Unit             Unit
	Limit            int
}

// QueryKind - как будет разрешён запрос
type QueryKind int

const (
	QueryKindCoordinates QueryKind = iota
	QueryKindAirportCode
	QueryKindPlaceName
)

func (k QueryKind) String() string {
	switch k {
	case QueryKindCoordinates:
		return "coordinates"
	case QueryKindAirportCode:
		return "airport_code"
	default:
		return "place_name"
	}
}

// ClassifyQuery определяет ветку разрешения в порядке: координаты, код, название
func ClassifyQuery(query string) QueryKind {
	if coordinatePattern.MatchString(query) {
		return QueryKindCoordinates
	}
	if IsAirportCode(strings.TrimSpace(query)) {
		return QueryKindAirportCode
	}
	return QueryKindPlaceName
}

// IsAirportCode - ровно три латинские буквы в любом регистре
func IsAirportCode(s string) bool {
	return isUpperAlpha(strings.ToUpper(s), 3)
}
