package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/pkg/geo"
)

// NearestAirports возвращает до limit ближайших активных аэропортов.
// Сортировка по расстоянию, при равенстве по идентификатору, поэтому повторные
// вызовы (и закешированные ответы) совпадают побайтно. Пустой результат не ошибка.
func NearestAirports(
	origin domain.Coordinate,
	candidates []domain.Airport,
	limit int,
	isoCountryFilter string,
	unit domain.Unit,
) []domain.RankedResult {
	filter := strings.TrimSpace(isoCountryFilter)

	ranked := make([]domain.RankedResult, 0, len(candidates))
	for _, a := range candidates {
		if !a.Active {
			continue
		}
		if filter != "" && !strings.EqualFold(a.ISOCountry, filter) {
			continue
		}
		ranked = append(ranked, domain.RankedResult{
			Airport:    a,
			DistanceKm: geo.Haversine(origin, a.Coordinate),
		})
	}

	slices.SortFunc(ranked, func(x, y domain.RankedResult) int {
		if c := cmp.Compare(x.DistanceKm, y.DistanceKm); c != 0 {
			return c
		}
		return strings.Compare(x.Airport.Identifier, y.Airport.Identifier)
	})

	if limit = domain.ClampLimit(limit); len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Unit = unit
		if unit == domain.UnitMi {
			ranked[i].DistanceDisplay = geo.KmToMi(ranked[i].DistanceKm)
		} else {
			ranked[i].Unit = domain.UnitKm
			ranked[i].DistanceDisplay = ranked[i].DistanceKm
		}
	}

	return ranked
}
