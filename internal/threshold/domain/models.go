// Package domain contains persistence models for sensor thresholds.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pondworks/pondwatch/internal/sensor"
)

// Threshold is a per-user safe range for one sensor type. A nil bound is
// unbounded on that side; a threshold with both bounds nil never triggers.
type Threshold struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	UserID       snowflake.ID `gorm:"not null;index"`
	SensorType   sensor.Type  `gorm:"column:sensor_type;type:text;not null"`
	MinValue     *float64     `gorm:"column:min_value"`
	MaxValue     *float64     `gorm:"column:max_value"`
	AlertEnabled bool         `gorm:"not null;default:true"`
}

// TableName sets the database table name.
func (Threshold) TableName() string { return "thresholds" }
