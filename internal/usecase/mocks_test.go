package usecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/airport-locator/internal/domain"
	"github.com/airport-locator/internal/domain/repository"
)

// MockAirportRepository is a mock of AirportRepository
type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) FindAirportByCode(ctx context.Context, code, isoCountry string) (*domain.Airport, error) {
	args := m.Called(ctx, code, isoCountry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) FindCityCentroid(ctx context.Context, name, isoCountry string) (*domain.Coordinate, error) {
	args := m.Called(ctx, name, isoCountry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

func (m *MockAirportRepository) ListActiveAirports(ctx context.Context, isoCountry string) ([]domain.Airport, error) {
	args := m.Called(ctx, isoCountry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository (без удаления по префиксу)
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

var _ repository.CacheRepository = (*MockCacheRepository)(nil)

// brokenCache - хранилище, которое всегда недоступно
type brokenCache struct{}

var errCacheDown = errors.New("cache is down")

func (brokenCache) Get(context.Context, string) ([]byte, error)              { return nil, errCacheDown }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error { return errCacheDown }
func (brokenCache) Delete(context.Context, string) error                     { return errCacheDown }
func (brokenCache) Exists(context.Context, string) (bool, error)             { return false, errCacheDown }
func (brokenCache) DeleteByPrefix(context.Context, string) (int, error)      { return 0, errCacheDown }

// Fixtures

var (
	dfw = domain.Airport{
		Identifier: "KDFW", IATACode: "DFW", Name: "Dallas Fort Worth International Airport",
		Coordinate: domain.MustCoordinate(32.90, -97.04), ISOCountry: "US",
		Municipality: "Dallas-Fort Worth", Active: true,
	}
	dal = domain.Airport{
		Identifier: "KDAL", IATACode: "DAL", Name: "Dallas Love Field",
		Coordinate: domain.MustCoordinate(32.85, -96.85), ISOCountry: "US",
		Municipality: "Dallas", Active: true,
	}
	mex = domain.Airport{
		Identifier: "MMMX", IATACode: "MEX", Name: "Mexico City International Airport",
		Coordinate: domain.MustCoordinate(19.4363, -99.0721), ISOCountry: "MX",
		Municipality: "Mexico City", Active: true,
	}
	lhr = domain.Airport{
		Identifier: "EGLL", IATACode: "LHR", Name: "London Heathrow Airport",
		Coordinate: domain.MustCoordinate(51.4706, -0.461941), ISOCountry: "GB",
		Municipality: "London", Active: true,
	}
	lgw = domain.Airport{
		Identifier: "EGKK", IATACode: "LGW", Name: "London Gatwick Airport",
		Coordinate: domain.MustCoordinate(51.148102, -0.190278), ISOCountry: "GB",
		Municipality: "London", Active: true,
	}
	closed = domain.Airport{
		Identifier: "KZZZ", IATACode: "ZZZ", Name: "Closed Field",
		Coordinate: domain.MustCoordinate(32.78, -96.80), ISOCountry: "US",
		Municipality: "Dallas", Active: false,
	}
)
