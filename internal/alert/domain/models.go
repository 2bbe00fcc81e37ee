// Package domain contains persistence models for threshold alerts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pondworks/pondwatch/internal/sensor"
)

// Severity classifies an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert records a single threshold violation detected during evaluation.
type Alert struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	UserID       snowflake.ID `gorm:"not null;index"`
	SensorType   sensor.Type  `gorm:"column:sensor_type;type:text;not null"`
	Message      string       `gorm:"type:text;not null"`
	Severity     Severity     `gorm:"type:text;not null"`
	Value        float64      `gorm:"not null"`
	Threshold    float64      `gorm:"not null"`
	Acknowledged bool         `gorm:"not null;default:false"`
	Timestamp    time.Time    `gorm:"not null;index"`
}

// TableName sets the database table name.
func (Alert) TableName() string { return "alerts" }

// CreateAlertRequest is one alert the evaluator asks the store to persist.
type CreateAlertRequest struct {
	UserID       snowflake.ID
	SensorType   sensor.Type
	Message      string
	Severity     Severity
	Value        float64
	Threshold    float64
	Acknowledged bool
}
