package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/pkg/errors"
	"github.com/airport-locator/internal/pkg/geo"
)

// LocationResolver - разрешает свободный запрос в координату.
// Порядок веток фиксирован: пара координат, IATA код, название города.
type LocationResolver struct {
	airportRepo repository.AirportRepository
	logger      *zap.Logger
}

// NewLocationResolver - создание нового LocationResolver
func NewLocationResolver(airportRepo repository.AirportRepository, logger *zap.Logger) *LocationResolver {
	return &LocationResolver{
		airportRepo: airportRepo,
		logger:      logger,
	}
}

// Resolve возвращает координату запроса. Только чтение, идемпотентно.
// Ошибки: валидация (400), UNKNOWN_CODE / UNKNOWN_LOCATION (404), ошибки хранилища.
func (r *LocationResolver) Resolve(ctx context.Context, query, isoCountryHint string) (domain.Coordinate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinate{}, errors.ErrValidation.WithField("query").WithMessage("query is required")
	}
	hint := strings.ToUpper(strings.TrimSpace(isoCountryHint))

	// 1. "lat,lon"
	coord, matched, err := domain.ParseCoordinate(query)
	if matched {
		if err != nil {
			var rangeErr *domain.CoordinateRangeError
			if stderrors.As(err, &rangeErr) {
				return domain.Coordinate{}, errors.ErrCoordinateOutOfRange.WithField("query")
			}
			return domain.Coordinate{}, errors.ErrInvalidCoordinates.WithField("query")
		}
		return coord, nil
	}

	// 2. IATA код
	if domain.IsAirportCode(query) {
		return r.resolveCode(ctx, strings.ToUpper(query), hint)
	}

	// 3. город / муниципалитет
	return r.resolvePlace(ctx, query, hint)
}

func (r *LocationResolver) resolveCode(ctx context.Context, code, hint string) (domain.Coordinate, error) {
	airport, err := r.airportRepo.FindAirportByCode(ctx, code, hint)
	if err != nil {
		return domain.Coordinate{}, err
	}
	if airport == nil {
		r.logger.Debug("Airport code not found", zap.String("code", code), zap.String("iso_country", hint))
		return domain.Coordinate{}, errors.ErrUnknownCode.
			WithField("query").
			WithMessage("could not resolve airport code %q", code)
	}
	return airport.Coordinate, nil
}

func (r *LocationResolver) resolvePlace(ctx context.Context, query, hint string) (domain.Coordinate, error) {
	name := NormalizeQuery(query)

	centroid, err := r.airportRepo.FindCityCentroid(ctx, name, hint)
	if err != nil {
		return domain.Coordinate{}, err
	}
	if centroid != nil {
		return *centroid, nil
	}

	// город без координаты: центр аэропортов с подходящим муниципалитетом
	airports, err := r.airportRepo.ListActiveAirports(ctx, hint)
	if err != nil {
		return domain.Coordinate{}, err
	}

	var points []domain.Coordinate
	for _, a := range airports {
		if !a.Active || (hint != "" && !strings.EqualFold(a.ISOCountry, hint)) {
			continue
		}
		if a.Municipality != "" && strings.Contains(NormalizeQuery(a.Municipality), name) {
			points = append(points, a.Coordinate)
		}
	}

	if c, ok := geo.Centroid(points...); ok {
		r.logger.Debug("Resolved place by airport municipality",
			zap.String("query", name),
			zap.Int("airports", len(points)))
		return c, nil
	}

	return domain.Coordinate{}, errors.ErrUnknownLocation.
		WithField("query").
		WithMessage("could not resolve location %q", query)
}

// isNegativeResolution - результат, который можно кешировать как "не найдено"
func isNegativeResolution(err error) bool {
	return stderrors.Is(err, errors.ErrUnknownCode) || stderrors.Is(err, errors.ErrUnknownLocation)
}

// negativeResolutionError восстанавливает ошибку для закешированного отсутствия
func negativeResolutionError(query string) error {
	q := strings.TrimSpace(query)
	if domain.ClassifyQuery(q) == domain.QueryKindAirportCode {
		return errors.ErrUnknownCode.
			WithField("query").
			WithMessage("could not resolve airport code %q", strings.ToUpper(q))
	}
	return errors.ErrUnknownLocation.
		WithField("query").
		WithMessage("could not resolve location %q", q)
}
