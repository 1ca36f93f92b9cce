package usecase

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/airport-locator/internal/domain"
)

// Префиксы ключей кеша. Формат ключей менять только вместе с префиксом.
const (
	CacheNamespace      = "search:"
	ResolveCachePrefix  = CacheNamespace + "resolve:"
	NearestCachePrefix  = CacheNamespace + "nearest:"
	coordinateKeyDigits = 2
)

// ResolveKey - search:resolve:<normalizedQuery>:<isoCountryOrEmpty>
// IATA код хранится в верхнем регистре, названия - без диакритики в нижнем,
// поэтому "ARE" и "Åre" не делят одну запись.
func ResolveKey(query, isoCountry string) string {
	return ResolveCachePrefix + resolveKeyQuery(query) + ":" + strings.ToUpper(isoCountry)
}

func resolveKeyQuery(query string) string {
	q := strings.TrimSpace(query)
	if domain.ClassifyQuery(q) == domain.QueryKindAirportCode {
		return strings.ToUpper(q)
	}
	return NormalizeQuery(q)
}

// NearestKey - search:nearest:<lat2dp>:<lon2dp>:<limit>:<isoCountryOrEmpty>:<unit>
func NearestKey(origin domain.Coordinate, limit int, isoCountry string, unit domain.Unit) string {
	var b strings.Builder
	b.WriteString(NearestCachePrefix)
	b.WriteString(RoundCoord(origin.Lat()))
	b.WriteByte(':')
	b.WriteString(RoundCoord(origin.Lon()))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(limit))
	b.WriteByte(':')
	b.WriteString(strings.ToUpper(isoCountry))
	b.WriteByte(':')
	b.WriteString(string(unit))
	return b.String()
}

// RoundCoord округляет до двух знаков (~1.1 км на экваторе).
// Отрицательный ноль печатается как "0.00".
func RoundCoord(v float64) string {
	scale := math.Pow10(coordinateKeyDigits)
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', coordinateKeyDigits, 64)
}

// NormalizeQuery: обрезка, схлопывание пробелов, нижний регистр, без диакритики
func NormalizeQuery(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}
