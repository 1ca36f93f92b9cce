package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/pkg/errors"
	"github.com/airport-locator/internal/pkg/geo"
	"github.com/airport-locator/internal/usecase/dto"
)

// Допустимый диапазон коэффициента маршрута
const (
	MinRouteFactor = 0.5
	MaxRouteFactor = 3.0
)

// SearchOptions - TTL кеша и значения по умолчанию для поиска
type SearchOptions struct {
	ResolveTTL   time.Duration
	NearestTTL   time.Duration
	DefaultLimit int
	MaxLimit     int
	DefaultUnit  domain.Unit
}

// DefaultSearchOptions - сутки на разрешение запроса, час на выдачу
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		ResolveTTL:   24 * time.Hour,
		NearestTTL:   time.Hour,
		DefaultLimit: domain.DefaultSearchLimit,
		MaxLimit:     domain.MaxSearchLimit,
		DefaultUnit:  domain.UnitKm,
	}
}

// SearchUseCase - use case поиска ближайших аэропортов
type SearchUseCase struct {
	airportRepo repository.AirportRepository
	resolver    *LocationResolver
	cache       *CacheLayer
	opts        SearchOptions
	logger      *zap.Logger
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	airportRepo repository.AirportRepository,
	cache *CacheLayer,
	logger *zap.Logger,
	opts SearchOptions,
) *SearchUseCase {
	if opts.MaxLimit < domain.MinSearchLimit || opts.MaxLimit > domain.MaxSearchLimit {
		opts.MaxLimit = domain.MaxSearchLimit
	}
	if opts.DefaultLimit < domain.MinSearchLimit || opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = min(domain.DefaultSearchLimit, opts.MaxLimit)
	}
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = domain.UnitKm
	}
	return &SearchUseCase{
		airportRepo: airportRepo,
		resolver:    NewLocationResolver(airportRepo, logger),
		cache:       cache,
		opts:        opts,
		logger:      logger,
	}
}

// Search - запрос -> координата -> ближайшие аэропорты.
// При ошибке разрешения частичных результатов нет.
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	q, err := uc.normalize(req.Query, req.ISOCountry, req.Unit, req.Limit)
	if err != nil {
		return nil, err
	}
	routeFactor, err := validateRouteFactor(req.RouteFactor)
	if err != nil {
		return nil, err
	}

	q.Coordinate, err = uc.resolveCached(ctx, q.RawQuery, q.ISOCountryFilter)
	if err != nil {
		return nil, err
	}

	ranked, err := uc.nearestCached(ctx, q)
	if err != nil {
		return nil, err
	}

	results := make([]dto.AirportResult, 0, len(ranked))
	for _, r := range ranked {
		item := dto.NewAirportResult(r)
		if routeFactor != nil {
			driving := toUnit(geo.EstimateDrivingKm(r.DistanceKm, *routeFactor), q.Unit)
			item.EstimatedDriving = &driving
		}
		results = append(results, item)
	}

	return &dto.SearchResponse{
		Query:   q.RawQuery,
		Origin:  dto.NewPoint(q.Coordinate),
		Unit:    string(q.Unit),
		Results: results,
		Total:   len(results),
	}, nil
}

// Resolve - координата запроса через кеш
func (uc *SearchUseCase) Resolve(ctx context.Context, req dto.ResolveRequest) (*dto.ResolveResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.ErrValidation.WithField("query").WithMessage("query is required")
	}
	country, err := normalizeCountry(req.ISOCountry)
	if err != nil {
		return nil, err
	}

	coord, err := uc.resolveCached(ctx, query, country)
	if err != nil {
		return nil, err
	}

	return &dto.ResolveResponse{
		Query:      query,
		ISOCountry: country,
		Point:      dto.NewPoint(coord),
	}, nil
}

// Distance - расстояние между двумя запросами по сфере и эллипсоиду
func (uc *SearchUseCase) Distance(ctx context.Context, req dto.DistanceRequest) (*dto.DistanceResponse, error) {
	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)
	if from == "" {
		return nil, errors.ErrValidation.WithField("from").WithMessage("from is required")
	}
	if to == "" {
		return nil, errors.ErrValidation.WithField("to").WithMessage("to is required")
	}
	country, err := normalizeCountry(req.ISOCountry)
	if err != nil {
		return nil, err
	}
	unit, err := uc.parseUnit(req.Unit)
	if err != nil {
		return nil, err
	}
	routeFactor, err := validateRouteFactor(req.RouteFactor)
	if err != nil {
		return nil, err
	}

	a, err := uc.resolveCached(ctx, from, country)
	if err != nil {
		return nil, renameQueryField(err, "from")
	}
	b, err := uc.resolveCached(ctx, to, country)
	if err != nil {
		return nil, renameQueryField(err, "to")
	}

	haversineKm := geo.Haversine(a, b)
	geodesicKm, formula := geo.Geodesic(a, b)

	resp := &dto.DistanceResponse{
		From:            dto.NewPoint(a),
		To:              dto.NewPoint(b),
		Unit:            string(unit),
		Haversine:       toUnit(haversineKm, unit),
		Geodesic:        toUnit(geodesicKm, unit),
		GeodesicFormula: string(formula),
	}
	if routeFactor != nil {
		driving := toUnit(geo.EstimateDrivingKm(geodesicKm, *routeFactor), unit)
		resp.RouteFactor = routeFactor
		resp.EstimatedDriving = &driving
	}
	return resp, nil
}

// InvalidateCache удаляет закешированные результаты по префиксу
func (uc *SearchUseCase) InvalidateCache(ctx context.Context, prefix string) (*dto.InvalidateCacheResponse, error) {
	deleted, err := uc.cache.Invalidate(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return &dto.InvalidateCacheResponse{Prefix: prefix, Deleted: deleted}, nil
}

// resolveCached - LocationResolver через кеш. UNKNOWN_* кешируются как отсутствие.
func (uc *SearchUseCase) resolveCached(ctx context.Context, query, country string) (domain.Coordinate, error) {
	key := ResolveKey(query, country)

	coord, found, err := GetOrCompute(ctx, uc.cache, key, uc.opts.ResolveTTL,
		func(ctx context.Context) (domain.Coordinate, bool, error) {
			c, err := uc.resolver.Resolve(ctx, query, country)
			if isNegativeResolution(err) {
				return domain.Coordinate{}, false, nil
			}
			if err != nil {
				return domain.Coordinate{}, false, err
			}
			return c, true, nil
		})
	if err != nil {
		return domain.Coordinate{}, err
	}
	if !found {
		return domain.Coordinate{}, negativeResolutionError(query)
	}
	return coord, nil
}

// nearestCached - NearestAirports через кеш; пустая выдача кешируется как обычный результат
func (uc *SearchUseCase) nearestCached(ctx context.Context, q domain.ResolvedQuery) ([]domain.RankedResult, error) {
	key := NearestKey(q.Coordinate, q.Limit, q.ISOCountryFilter, q.Unit)

	ranked, _, err := GetOrCompute(ctx, uc.cache, key, uc.opts.NearestTTL,
		func(ctx context.Context) ([]domain.RankedResult, bool, error) {
			candidates, err := uc.airportRepo.ListActiveAirports(ctx, q.ISOCountryFilter)
			if err != nil {
				return nil, false, err
			}
			return NearestAirports(q.Coordinate, candidates, q.Limit, q.ISOCountryFilter, q.Unit), true, nil
		})
	if err != nil {
		uc.logger.Error("Failed to compute nearest airports", zap.String("query", q.RawQuery), zap.Error(err))
		return nil, err
	}
	return ranked, nil
}

// normalize: trim, unit по умолчанию, лимит по умолчанию и в границах, страна в верхнем регистре
func (uc *SearchUseCase) normalize(query, isoCountry, unit string, limit *int) (domain.ResolvedQuery, error) {
	q := domain.ResolvedQuery{RawQuery: strings.TrimSpace(query)}
	if q.RawQuery == "" {
		return q, errors.ErrValidation.WithField("query").WithMessage("query is required")
	}

	var err error
	if q.ISOCountryFilter, err = normalizeCountry(isoCountry); err != nil {
		return q, err
	}
	if q.Unit, err = uc.parseUnit(unit); err != nil {
		return q, err
	}

	switch {
	case limit == nil:
		q.Limit = uc.opts.DefaultLimit
	case *limit > uc.opts.MaxLimit:
		q.Limit = uc.opts.MaxLimit
	default:
		q.Limit = domain.ClampLimit(*limit)
	}
	return q, nil
}

func (uc *SearchUseCase) parseUnit(s string) (domain.Unit, error) {
	if strings.TrimSpace(s) == "" {
		return uc.opts.DefaultUnit, nil
	}
	u, err := domain.ParseUnit(s)
	if err != nil {
		return "", errors.ErrInvalidUnit.WithField("unit")
	}
	return u, nil
}

func normalizeCountry(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	upper := strings.ToUpper(s)
	if len(upper) != 2 || upper[0] < 'A' || upper[0] > 'Z' || upper[1] < 'A' || upper[1] > 'Z' {
		return "", errors.ErrInvalidCountry.WithField("isoCountry")
	}
	return upper, nil
}

func validateRouteFactor(rf *float64) (*float64, error) {
	if rf == nil {
		return nil, nil
	}
	if math.IsNaN(*rf) || *rf < MinRouteFactor || *rf > MaxRouteFactor {
		return nil, errors.ErrInvalidRouteFactor.WithField("routeFactor")
	}
	v := *rf
	return &v, nil
}

func toUnit(km float64, unit domain.Unit) float64 {
	if unit == domain.UnitMi {
		return geo.KmToMi(km)
	}
	return km
}

// renameQueryField переносит ошибку разрешения на поле запроса from/to
func renameQueryField(err error, field string) error {
	if appErr, ok := errors.As(err); ok && appErr.Field == "query" {
		return appErr.WithField(field)
	}
	return err
}
