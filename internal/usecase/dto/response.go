package dto

import (
	"github.com/airport-locator/internal/domain"
)

// Point - координата в ответе
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewPoint - из доменной координаты
func NewPoint(c domain.Coordinate) Point {
	return Point{Latitude: c.Lat(), Longitude: c.Lon()}
}

// AirportResult - аэропорт в выдаче поиска
type AirportResult struct {
	Identifier   string  `json:"identifier"`
	IATACode     string  `json:"iataCode"`
	Name         string  `json:"name"`
	ISOCountry   string  `json:"isoCountry"`
	Municipality string  `json:"municipality"`
	Location     Point   `json:"location"`
	Distance     float64 `json:"distance"`
	DistanceKm   float64 `json:"distanceKm"`
	Unit         string  `json:"unit"`
	// EstimatedDriving - оценка по дорогам в unit, только при заданном routeFactor
	EstimatedDriving *float64 `json:"estimatedDriving,omitempty"`
}

// SearchResponse - упорядоченные по расстоянию аэропорты
type SearchResponse struct {
	Query   string          `json:"query"`
	Origin  Point           `json:"origin"`
	Unit    string          `json:"unit"`
	Results []AirportResult `json:"results"`
	Total   int             `json:"total"`
}

// ResolveResponse - координата запроса
type ResolveResponse struct {
	Query      string `json:"query"`
	ISOCountry string `json:"isoCountry,omitempty"`
	Point
}

// DistanceResponse - расстояние между двумя точками
type DistanceResponse struct {
	From             Point    `json:"from"`
	To               Point    `json:"to"`
	Unit             string   `json:"unit"`
	Haversine        float64  `json:"haversine"`
	Geodesic         float64  `json:"geodesic"`
	GeodesicFormula  string   `json:"geodesicFormula"`
	RouteFactor      *float64 `json:"routeFactor,omitempty"`
	EstimatedDriving *float64 `json:"estimatedDriving,omitempty"`
}

// InvalidateCacheResponse - результат инвалидации
type InvalidateCacheResponse struct {
	Prefix  string `json:"prefix"`
	Deleted int    `json:"deleted"`
}

// NewAirportResult - из ранжированного результата
func NewAirportResult(r domain.RankedResult) AirportResult {
	return AirportResult{
		Identifier:   r.Airport.Identifier,
		IATACode:     r.Airport.IATACode,
		Name:         r.Airport.Name,
		ISOCountry:   r.Airport.ISOCountry,
		Municipality: r.Airport.Municipality,
		Location:     NewPoint(r.Airport.Coordinate),
		Distance:     r.DistanceDisplay,
		DistanceKm:   r.DistanceKm,
		Unit:         string(r.Unit),
	}
}
