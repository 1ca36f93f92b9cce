package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/airport-locator/internal/domain/repository"
	"github.com/airport-locator/internal/repository/postgres"
)

// LoadFixtures выполняет SQL файлы из dir в одной транзакции
func LoadFixtures(ctx context.Context, db *sqlx.DB, dir string, files ...string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fixtures tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return tx.Commit()
}

// AirportFixture - строка airports без проверок домена (в т.ч. заведомо битая)
type AirportFixture struct {
	Ident        string  `db:"ident"`
	IATACode     string  `db:"iata_code"`
	Name         string  `db:"name"`
	Latitude     float64 `db:"latitude_deg"`
	Longitude    float64 `db:"longitude_deg"`
	ISOCountry   string  `db:"iso_country"`
	Municipality string  `db:"municipality"`
	Active       bool    `db:"active"`
}

// InsertAirport добавляет строку; вернёт функцию удаления
func (tdb *TestDB) InsertAirport(ctx context.Context, a AirportFixture) (func(), error) {
	_, err := tdb.DB.NamedExecContext(ctx, `
		INSERT INTO airports (ident, iata_code, name, latitude_deg, longitude_deg, iso_country, municipality, active)
		VALUES (:ident, :iata_code, :name, :latitude_deg, :longitude_deg, :iso_country, :municipality, :active)
	`, a)
	if err != nil {
		return nil, fmt.Errorf("insert airport %s: %w", a.Ident, err)
	}

	return func() {
		_, _ = tdb.DB.ExecContext(context.Background(), "DELETE FROM airports WHERE ident = $1", a.Ident)
	}, nil
}

// AirportRepository - репозиторий поверх тестового подключения
func (tdb *TestDB) AirportRepository() repository.AirportRepository {
	return postgres.NewAirportRepository(postgres.NewDBForTest(tdb.DB, tdb.Logger, 0))
}
