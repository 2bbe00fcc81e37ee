// Package evaluator compares one reading against a user's thresholds and
// decides which alerts to raise. It performs no I/O; persisting the result
// is the caller's job.
package evaluator

import (
	"fmt"
	"strconv"

	alertdomain "github.com/pondworks/pondwatch/internal/alert/domain"
	readingdomain "github.com/pondworks/pondwatch/internal/reading/domain"
	"github.com/pondworks/pondwatch/internal/sensor"
	thresholddomain "github.com/pondworks/pondwatch/internal/threshold/domain"
)

// Evaluate returns the alerts a reading should raise, in sensor enumeration
// order (ph, waterLevel, temperature, nh3, turbidity).
//
// For each sensor type sampled in the reading, the first enabled threshold
// for that type wins; further thresholds for the same type are ignored. A
// value strictly below the minimum bound raises a critical alert; otherwise
// a value strictly above the maximum bound does. Boundary-equal values never
// trigger. Same inputs always produce the same outputs.
func Evaluate(reading readingdomain.Reading, thresholds []thresholddomain.Threshold) []alertdomain.CreateAlertRequest {
	var requests []alertdomain.CreateAlertRequest

	for _, sensorType := range sensor.Types() {
		value := reading.Value(sensorType)
		if value == nil {
			continue
		}

		threshold := findEnabled(thresholds, sensorType)
		if threshold == nil {
			continue
		}

		// Min is checked first; max only when min did not fire.
		if threshold.MinValue != nil && *value < *threshold.MinValue {
			requests = append(requests, alertdomain.CreateAlertRequest{
				UserID:     reading.UserID,
				SensorType: sensorType,
				Message: fmt.Sprintf("%s level (%s) is below minimum threshold (%s)",
					sensorType, formatValue(*value), formatValue(*threshold.MinValue)),
				Severity:  alertdomain.SeverityCritical,
				Value:     *value,
				Threshold: *threshold.MinValue,
			})
			continue
		}

		if threshold.MaxValue != nil && *value > *threshold.MaxValue {
			requests = append(requests, alertdomain.CreateAlertRequest{
				UserID:     reading.UserID,
				SensorType: sensorType,
				Message: fmt.Sprintf("%s level (%s) is above maximum threshold (%s)",
					sensorType, formatValue(*value), formatValue(*threshold.MaxValue)),
				Severity:  alertdomain.SeverityCritical,
				Value:     *value,
				Threshold: *threshold.MaxValue,
			})
		}
	}

	return requests
}

// findEnabled returns the first enabled threshold for the sensor type in
// store-iteration order. Duplicate thresholds per type are tolerated;
// disabled ones are skipped over.
func findEnabled(thresholds []thresholddomain.Threshold, sensorType sensor.Type) *thresholddomain.Threshold {
	for i := range thresholds {
		if thresholds[i].SensorType == sensorType && thresholds[i].AlertEnabled {
			return &thresholds[i]
		}
	}
	return nil
}

// formatValue renders a number without trailing zeros (5, not 5.000000),
// matching the message format alerts have always used.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
