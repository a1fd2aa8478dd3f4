package weather

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ngmaloney/tidewatch/internal/models"
	"github.com/ngmaloney/tidewatch/internal/noaa"
)

const (
	metersPerMile = 1609.34
	msToMPH       = 2.237
	kmhToMS       = 1 / 3.6
	compassPoints = 16
	degPerPoint   = 360.0 / compassPoints
)

var compass = [compassPoints]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// Fahrenheit converts a reported temperature to whole degrees F, or nil
// when the station did not report one.
func Fahrenheit(q noaa.Quantity) *int {
	if q.Value == nil {
		return nil
	}
	f := *q.Value
	if q.UnitCode != "wmoUnit:degF" {
		f = f*9/5 + 32
	}
	v := int(math.RoundToEven(f))
	return &v
}

// WindMPH formats a wind speed as "N mph".
func WindMPH(q noaa.Quantity) string {
	if q.Value == nil {
		return models.NotReported
	}
	ms := *q.Value
	if q.UnitCode == "wmoUnit:km_h-1" {
		ms *= kmhToMS
	}
	return fmt.Sprintf("%d mph", int(math.RoundToEven(ms*msToMPH)))
}

// VisibilityMiles formats a distance in meters as "N.N mi".
func VisibilityMiles(q noaa.Quantity) string {
	if q.Value == nil {
		return models.NotReported
	}
	miles := decimal.NewFromFloat(*q.Value / metersPerMile)
	return miles.StringFixedBank(1) + " mi"
}

// Compass maps degrees to a 16-point direction.
func Compass(degrees *float64) string {
	if degrees == nil {
		return models.NotReported
	}
	idx := int(math.RoundToEven(*degrees/degPerPoint)) % compassPoints
	if idx < 0 {
		idx += compassPoints
	}
	return compass[idx]
}
