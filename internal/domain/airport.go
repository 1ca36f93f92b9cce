package domain

import (
	"errors"
	"fmt"
)

// Airport - проекция аэропорта, которую отдаёт хранилище.
// Хранилище обязано отбрасывать записи, не прошедшие Validate.
type Airport struct {
	Identifier   string     `json:"identifier"`
	IATACode     string     `json:"iataCode"`
	Name         string     `json:"name"`
	Coordinate   Coordinate `json:"coordinate"`
	ISOCountry   string     `json:"isoCountry"`
	Municipality string     `json:"municipality"`
	Active       bool       `json:"active"`
}

// Validate проверяет инварианты записи
func (a Airport) Validate() error {
	if a.Identifier == "" {
		return errors.New("airport identifier is empty")
	}
	if a.IATACode != "" && !isUpperAlpha(a.IATACode, 3) {
		return fmt.Errorf("airport %s: invalid iata code %q", a.Identifier, a.IATACode)
	}
	if !isUpperAlpha(a.ISOCountry, 2) {
		return fmt.Errorf("airport %s: invalid iso country %q", a.Identifier, a.ISOCountry)
	}
	return nil
}

// City - город с явным центроидом; координата может отсутствовать
type City struct {
	Name       string
	ISOCountry string
	Centroid   *Coordinate
}

func isUpperAlpha(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
