package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{name: "regular point", lat: 32.9, lon: -97.04},
		{name: "north pole", lat: 90, lon: 0},
		{name: "date line", lat: 0, lon: -180},
		{name: "latitude too small", lat: -95, lon: 10, wantErr: true},
		{name: "longitude too large", lat: 0, lon: 180.5, wantErr: true},
		{name: "nan", lat: math.NaN(), lon: 0, wantErr: true},
		{name: "inf", lat: 0, lon: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoordinate(tt.lat, tt.lon)
			if tt.wantErr {
				var rangeErr *CoordinateRangeError
				assert.ErrorAs(t, err, &rangeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, c.Lat())
			assert.Equal(t, tt.lon, c.Lon())
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	t.Run("pair with spaces", func(t *testing.T) {
		c, matched, err := ParseCoordinate("  32.9 , -97.04 ")
		require.NoError(t, err)
		assert.True(t, matched)
		assert.Equal(t, MustCoordinate(32.9, -97.04), c)
	})

	t.Run("explicit plus sign and integers", func(t *testing.T) {
		c, matched, err := ParseCoordinate("+10,20")
		require.NoError(t, err)
		assert.True(t, matched)
		assert.Equal(t, 10.0, c.Lat())
		assert.Equal(t, 20.0, c.Lon())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, matched, err := ParseCoordinate("-95,10")
		assert.True(t, matched)
		assert.Error(t, err)
	})

	t.Run("not a coordinate pair", func(t *testing.T) {
		for _, q := range []string{"dfw", "Dallas", "32.9", "32.9,", "1e3,2", ".5,1"} {
			_, matched, err := ParseCoordinate(q)
			assert.False(t, matched, q)
			assert.NoError(t, err, q)
		}
	})
}

func TestCoordinate_JSON(t *testing.T) {
	c := MustCoordinate(32.85, -96.85)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":32.85,"longitude":-96.85}`, string(data))

	var decoded Coordinate
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c, decoded)

	err = json.Unmarshal([]byte(`{"latitude":91,"longitude":0}`), &decoded)
	assert.Error(t, err)
}

func TestClassifyQuery(t *testing.T) {
	assert.Equal(t, QueryKindCoordinates, ClassifyQuery("32.9,-97.04"))
	assert.Equal(t, QueryKindCoordinates, ClassifyQuery("-95,10"))
	assert.Equal(t, QueryKindAirportCode, ClassifyQuery("dfw"))
	assert.Equal(t, QueryKindAirportCode, ClassifyQuery(" JFK "))
	assert.Equal(t, QueryKindPlaceName, ClassifyQuery("Dallas"))
	assert.Equal(t, QueryKindPlaceName, ClassifyQuery("D1W"))
	assert.Equal(t, QueryKindPlaceName, ClassifyQuery("São Paulo"))
}

func TestAirport_Validate(t *testing.T) {
	valid := Airport{Identifier: "KDFW", IATACode: "DFW", ISOCountry: "US", Coordinate: MustCoordinate(32.9, -97.04)}
	assert.NoError(t, valid.Validate())

	noCode := valid
	noCode.IATACode = ""
	assert.NoError(t, noCode.Validate())

	noID := valid
	noID.Identifier = ""
	assert.Error(t, noID.Validate())

	lowerCode := valid
	lowerCode.IATACode = "dfw"
	assert.Error(t, lowerCode.Validate())

	badCountry := valid
	badCountry.ISOCountry = "USA"
	assert.Error(t, badCountry.Validate())
}

func TestParseUnitAndClampLimit(t *testing.T) {
	u, err := ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, UnitKm, u)

	u, err = ParseUnit(" MI ")
	require.NoError(t, err)
	assert.Equal(t, UnitMi, u)

	_, err = ParseUnit("nm")
	assert.Error(t, err)

	assert.Equal(t, 1, ClampLimit(-4))
	assert.Equal(t, 1, ClampLimit(0))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, 10, ClampLimit(25))
}
