// Package domain contains persistence models for sensor readings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pondworks/pondwatch/internal/sensor"
)

// Reading stores one timestamped set of sensor values for a user.
// A nil field means the sensor was not sampled in this reading.
type Reading struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	UserID      snowflake.ID `gorm:"not null;index"`
	PH          *float64     `gorm:"column:ph"`
	WaterLevel  *float64     `gorm:"column:water_level"`
	Temperature *float64     `gorm:"column:temperature"`
	NH3         *float64     `gorm:"column:nh3"`
	Turbidity   *float64     `gorm:"column:turbidity"`
	Timestamp   time.Time    `gorm:"not null;index"`
}

// TableName sets the database table name.
func (Reading) TableName() string { return "readings" }

// Value returns the sampled value for a sensor type, if present.
func (r Reading) Value(t sensor.Type) *float64 {
	switch t {
	case sensor.TypePH:
		return r.PH
	case sensor.TypeWaterLevel:
		return r.WaterLevel
	case sensor.TypeTemperature:
		return r.Temperature
	case sensor.TypeNH3:
		return r.NH3
	case sensor.TypeTurbidity:
		return r.Turbidity
	default:
		return nil
	}
}
