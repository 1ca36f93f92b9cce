package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"go.uber.org/zap"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/pkg/errors"
)

type airportRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAirportRepository создает новый экземпляр AirportRepository
func NewAirportRepository(db *DB) repository.AirportRepository {
	return &airportRepository{
		db:     db,
		logger: db.logger,
	}
}

// airportRow - строка таблицы airports
type airportRow struct {
	Ident        string  `db:"ident"`
	IATACode     string  `db:"iata_code"`
	Name         string  `db:"name"`
	Latitude     float64 `db:"latitude_deg"`
	Longitude    float64 `db:"longitude_deg"`
	ISOCountry   string  `db:"iso_country"`
	Municipality string  `db:"municipality"`
	Active       bool    `db:"active"`
}

const airportColumns = `ident, iata_code, name, latitude_deg, longitude_deg,
	iso_country, municipality, active`

func (row airportRow) toDomain() (domain.Airport, error) {
	coord, err := domain.NewCoordinate(row.Latitude, row.Longitude)
	if err != nil {
		return domain.Airport{}, err
	}
	a := domain.Airport{
		Identifier:   row.Ident,
		IATACode:     strings.TrimSpace(row.IATACode),
		Name:         row.Name,
		Coordinate:   coord,
		ISOCountry:   strings.TrimSpace(row.ISOCountry),
		Municipality: row.Municipality,
		Active:       row.Active,
	}
	if err := a.Validate(); err != nil {
		return domain.Airport{}, err
	}
	return a, nil
}

// FindAirportByCode возвращает первый (по ident) активный аэропорт с IATA кодом
func (r *airportRepository) FindAirportByCode(ctx context.Context, code, isoCountry string) (*domain.Airport, error) {
	query := `
		SELECT ` + airportColumns + `
		FROM airports
		WHERE active
		  AND iata_code = $1
		  AND ($2 = '' OR iso_country = $2)
		ORDER BY ident
	`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rows []airportRow
	err := r.db.SelectContext(ctx, &rows, query,
		strings.ToUpper(strings.TrimSpace(code)),
		strings.ToUpper(strings.TrimSpace(isoCountry)),
	)
	if err != nil {
		r.logger.Error("Failed to find airport by code",
			zap.String("code", code),
			zap.String("iso_country", isoCountry),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, row := range rows {
		airport, err := row.toDomain()
		if err != nil {
			r.logger.Warn("Skipping invalid airport row", zap.String("ident", row.Ident), zap.Error(err))
			continue
		}
		return &airport, nil
	}

	return nil, nil
}

// FindCityCentroid ищет город по подстроке нормализованного имени.
// Точное совпадение предпочтительнее; если у лучшего совпадения нет
// координаты, возвращает nil (дальше решает резолвер).
func (r *airportRepository) FindCityCentroid(ctx context.Context, name, isoCountry string) (*domain.Coordinate, error) {
	query := `
		SELECT latitude, longitude
		FROM cities
		WHERE search_name LIKE '%' || $1 || '%' ESCAPE '\'
		  AND ($2 = '' OR iso_country = $2)
		ORDER BY (search_name = $3) DESC,
		         (latitude IS NOT NULL AND longitude IS NOT NULL) DESC,
		         length(search_name), id
		LIMIT 1
	`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	normalized := strings.ToLower(strings.TrimSpace(name))
	var lat, lon sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query,
		escapeLike(normalized),
		strings.ToUpper(strings.TrimSpace(isoCountry)),
		normalized,
	).Scan(&lat, &lon)

	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find city centroid",
			zap.String("name", name),
			zap.String("iso_country", isoCountry),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if !lat.Valid || !lon.Valid {
		return nil, nil
	}

	coord, err := domain.NewCoordinate(lat.Float64, lon.Float64)
	if err != nil {
		r.logger.Warn("Skipping city with invalid centroid", zap.String("name", name), zap.Error(err))
		return nil, nil
	}
	return &coord, nil
}

// ListActiveAirports возвращает активные аэропорты, упорядоченные по ident
func (r *airportRepository) ListActiveAirports(ctx context.Context, isoCountry string) ([]domain.Airport, error) {
	query := `
		SELECT ` + airportColumns + `
		FROM airports
		WHERE active
		  AND ($1 = '' OR iso_country = $1)
		ORDER BY ident
	`

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rows []airportRow
	if err := r.db.SelectContext(ctx, &rows, query, strings.ToUpper(strings.TrimSpace(isoCountry))); err != nil {
		r.logger.Error("Failed to list active airports",
			zap.String("iso_country", isoCountry),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	airports := make([]domain.Airport, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		airport, err := row.toDomain()
		if err != nil {
			skipped++
			r.logger.Warn("Skipping invalid airport row", zap.String("ident", row.Ident), zap.Error(err))
			continue
		}
		airports = append(airports, airport)
	}

	r.logger.Debug("Active airports loaded",
		zap.String("iso_country", isoCountry),
		zap.Int("count", len(airports)),
		zap.Int("skipped", skipped))

	return airports, nil
}

// escapeLike экранирует спецсимволы LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
