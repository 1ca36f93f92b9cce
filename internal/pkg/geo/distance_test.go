package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airport-locator/internal/domain"
)

var (
	paris  = domain.MustCoordinate(48.8566, 2.3522)
	london = domain.MustCoordinate(51.5074, -0.1278)
	dfw    = domain.MustCoordinate(32.90, -97.04)
	dal    = domain.MustCoordinate(32.85, -96.85)
)

func TestHaversine(t *testing.T) {
	oneDegree := EarthRadiusKm * math.Pi / 180

	assert.InDelta(t, oneDegree, Haversine(domain.MustCoordinate(0, 0), domain.MustCoordinate(0, 1)), 1e-9)
	assert.InDelta(t, oneDegree, Haversine(domain.MustCoordinate(0, 0), domain.MustCoordinate(1, 0)), 1e-9)
	assert.InDelta(t, 343.5, Haversine(paris, london), 1.0)
}

func TestHaversine_Properties(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(paris, paris))
	assert.Equal(t, Haversine(paris, london), Haversine(london, paris))

	antipodal := Haversine(domain.MustCoordinate(0, 0), domain.MustCoordinate(0, 180))
	assert.InDelta(t, EarthRadiusKm*math.Pi, antipodal, 1e-6)
	assert.GreaterOrEqual(t, Haversine(domain.MustCoordinate(90, 0), domain.MustCoordinate(-90, 0)), 0.0)
}

func TestGeodesic_Equator(t *testing.T) {
	km, formula := Geodesic(domain.MustCoordinate(0, 0), domain.MustCoordinate(0, 1))
	assert.Equal(t, FormulaVincenty, formula)
	assert.InDelta(t, 111.319, km, 0.001)
}

func TestGeodesic_AgreesWithHaversineUnder1000Km(t *testing.T) {
	pairs := [][2]domain.Coordinate{
		{paris, london},
		{dfw, dal},
		{domain.MustCoordinate(60, 10), domain.MustCoordinate(55, 15)},
		{domain.MustCoordinate(-33.9, 151.2), domain.MustCoordinate(-37.8, 145.0)},
	}
	for _, p := range pairs {
		g, formula := Geodesic(p[0], p[1])
		h := Haversine(p[0], p[1])
		require.Equal(t, FormulaVincenty, formula)
		assert.InEpsilon(t, h, g, 0.01, "%s -> %s", p[0], p[1])
	}
}

func TestGeodesic_IdenticalPoints(t *testing.T) {
	km, formula := Geodesic(paris, paris)
	assert.Equal(t, 0.0, km)
	assert.Equal(t, FormulaVincenty, formula)
}

func TestGeodesic_NearAntipodalFallsBackSilently(t *testing.T) {
	a := domain.MustCoordinate(0, 0)
	b := domain.MustCoordinate(0, 180)

	km, formula := Geodesic(a, b)
	assert.False(t, math.IsNaN(km))
	if formula == FormulaHaversine {
		assert.Equal(t, Haversine(a, b), km)
	}
}

func TestUnitConversions(t *testing.T) {
	assert.InDelta(t, 1.0, KmToMi(1.609344), 1e-9)
	assert.InDelta(t, 1.609344, MiToKm(1), 1e-12)

	for _, x := range []float64{0.001, 1, 42.195, 1234.5, 20015} {
		assert.InEpsilon(t, x, KmToMi(MiToKm(x)), 1e-6)
		assert.InEpsilon(t, x, MiToKm(KmToMi(x)), 1e-6)
	}
}

func TestEstimateDrivingKm(t *testing.T) {
	assert.Equal(t, 150.0, EstimateDrivingKm(100, 1.5))
	assert.Equal(t, 0.0, EstimateDrivingKm(0, 3))
}

func TestCentroid(t *testing.T) {
	_, ok := Centroid()
	assert.False(t, ok)

	c, ok := Centroid(paris)
	require.True(t, ok)
	assert.Equal(t, paris, c)

	c, ok = Centroid(domain.MustCoordinate(0, 10), domain.MustCoordinate(0, 20))
	require.True(t, ok)
	assert.InDelta(t, 0, c.Lat(), 1e-9)
	assert.InDelta(t, 15, c.Lon(), 1e-9)

	// через антимеридиан
	c, ok = Centroid(domain.MustCoordinate(0, 179), domain.MustCoordinate(0, -179))
	require.True(t, ok)
	assert.InDelta(t, 180, math.Abs(c.Lon()), 1e-9)
}

func TestCentroid_Antipodes(t *testing.T) {
	a := domain.MustCoordinate(0, 0)
	c, ok := Centroid(a, domain.MustCoordinate(0, 180))
	require.True(t, ok)
	assert.Equal(t, a, c)
}
