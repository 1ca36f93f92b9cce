package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// coordinatePattern - запрос вида "lat,lon"
var coordinatePattern = regexp.MustCompile(`^\s*([+-]?\d+(\.\d+)?)\s*,\s*([+-]?\d+(\.\d+)?)\s*$`)

// Coordinate - неизменяемая точка в градусах.
// Создаётся только через NewCoordinate или ParseCoordinate, поэтому всегда валидна.
type Coordinate struct {
	lat float64
	lon float64
}

// CoordinateRangeError - широта или долгота вне допустимого диапазона
type CoordinateRangeError struct {
	Lat float64
	Lon float64
}

func (e *CoordinateRangeError) Error() string {
	return fmt.Sprintf("coordinate out of range: lat=%v lon=%v", e.Lat, e.Lon)
}

// NewCoordinate проверяет диапазоны и создаёт координату
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return Coordinate{}, &CoordinateRangeError{Lat: lat, Lon: lon}
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinate{}, &CoordinateRangeError{Lat: lat, Lon: lon}
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// MustCoordinate - для констант и тестов
func MustCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCoordinate разбирает строку "lat,lon".
// matched=false означает, что строка не похожа на пару координат вовсе;
// matched=true с ошибкой - пара распознана, но вне диапазона.
func ParseCoordinate(s string) (c Coordinate, matched bool, err error) {
	m := coordinatePattern.FindStringSubmatch(s)
	if m == nil {
		return Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinate{}, true, err
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Coordinate{}, true, err
	}

	c, err = NewCoordinate(lat, lon)
	return c, true, err
}

func (c Coordinate) Lat() float64 { return c.lat }
func (c Coordinate) Lon() float64 { return c.lon }

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.lon, 'f', -1, 64)
}

type coordinateJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordinateJSON{Latitude: c.lat, Longitude: c.lon})
}

// UnmarshalJSON повторно валидирует значения, в том числе прочитанные из кеша
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw coordinateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewCoordinate(raw.Latitude, raw.Longitude)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
