// Package geo содержит чистые функции расчёта расстояний между координатами.
// Состояния нет, все функции безопасны для конкурентного вызова.
package geo

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/airport-locator/internal/domain"
)

const (
	// EarthRadiusKm - средний радиус Земли для haversine
	EarthRadiusKm = 6371.0

	// MilesPerKm и KmPerMile - константы перевода единиц
	MilesPerKm = 0.621371192237334
	KmPerMile  = 1.609344
)

// WGS-84
const (
	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563
	wgs84B = (1 - wgs84F) * wgs84A

	vincentyMaxIterations = 200
	vincentyTolerance     = 1e-12
)

// Formula - формула, фактически использованная для геодезического расстояния
type Formula string

const (
	FormulaVincenty  Formula = "vincenty"
	FormulaHaversine Formula = "haversine"
)

// Haversine вычисляет расстояние по большому кругу в километрах
func Haversine(a, b domain.Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := toRadians(a.Lat())
	lat2 := toRadians(b.Lat())
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	// ошибки округления могут вывести h чуть за [0, 1]
	h = math.Max(0, math.Min(1, h))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Geodesic вычисляет расстояние на эллипсоиде WGS-84 (обратная задача Винценти).
// Для почти антиподальных точек итерация не сходится, тогда молча используется
// Haversine. Вторым значением возвращается формула, давшая результат.
func Geodesic(a, b domain.Coordinate) (float64, Formula) {
	if km, ok := vincenty(a, b); ok {
		return km, FormulaVincenty
	}
	return Haversine(a, b), FormulaHaversine
}

func vincenty(a, b domain.Coordinate) (float64, bool) {
	if a == b {
		return 0, true
	}

	L := toRadians(b.Lon() - a.Lon())
	U1 := math.Atan((1 - wgs84F) * math.Tan(toRadians(a.Lat())))
	U2 := math.Atan((1 - wgs84F) * math.Tan(toRadians(b.Lat())))
	sinU1, cosU1 := math.Sin(U1), math.Cos(U1)
	sinU2, cosU2 := math.Sin(U2), math.Cos(U2)

	lambda := L
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64
	converged := false

	for i := 0; i < vincentyMaxIterations; i++ {
		sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)

		t1 := cosU2 * sinLambda
		t2 := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(t1*t1 + t2*t2)
		if sinSigma == 0 {
			return 0, true
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		cos2SigmaM = 0 // геодезическая линия вдоль экватора
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		C := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
		prev := lambda
		lambda = L + (1-C)*wgs84F*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}

	if !converged {
		return 0, false
	}

	uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	meters := wgs84B * A * (sigma - deltaSigma)
	if math.IsNaN(meters) || meters < 0 {
		return 0, false
	}
	return meters / 1000, true
}

// KmToMi переводит километры в мили
func KmToMi(km float64) float64 {
	return km * MilesPerKm
}

// MiToKm переводит мили в километры
func MiToKm(mi float64) float64 {
	return mi * KmPerMile
}

// EstimateDrivingKm - оценка расстояния по дорогам через коэффициент маршрута.
// Диапазон routeFactor проверяет вызывающий код.
func EstimateDrivingKm(straightLineKm, routeFactor float64) float64 {
	return straightLineKm * routeFactor
}

// Centroid возвращает сферический центроид точек. Для пустого набора ok=false.
// Если векторы взаимно гасятся (антиподы), возвращается первая точка.
func Centroid(points ...domain.Coordinate) (domain.Coordinate, bool) {
	if len(points) == 0 {
		return domain.Coordinate{}, false
	}
	if len(points) == 1 {
		return points[0], true
	}

	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())).Vector)
	}
	if sum.Norm() < 1e-12 {
		return points[0], true
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	c, err := domain.NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
	if err != nil {
		return points[0], true
	}
	return c, true
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
