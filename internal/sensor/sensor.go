// Package sensor defines the closed set of monitored sensor types.
package sensor

// Type identifies one of the monitored water parameters.
type Type string

const (
	TypePH          Type = "ph"
	TypeWaterLevel  Type = "waterLevel"
	TypeTemperature Type = "temperature"
	TypeNH3         Type = "nh3"
	TypeTurbidity   Type = "turbidity"
)

// Types returns all sensor types in evaluation order.
func Types() []Type {
	return []Type{TypePH, TypeWaterLevel, TypeTemperature, TypeNH3, TypeTurbidity}
}

// Valid reports whether t is one of the known sensor types.
func Valid(t Type) bool {
	switch t {
	case TypePH, TypeWaterLevel, TypeTemperature, TypeNH3, TypeTurbidity:
		return true
	default:
		return false
	}
}

func (t Type) String() string { return string(t) }
