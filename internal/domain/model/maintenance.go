//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// AlertType classifies a maintenance alert for presentation.
type AlertType string

const (
	AlertTypeWarning AlertType = "warning"
	AlertTypeInfo    AlertType = "info"
)

// Alert is a maintenance notice attached to a vehicle snapshot.
type Alert struct {
	Type    AlertType `json:"type"`
	Message string    `json:"message"`
}

// TirePressure holds per-corner tire pressure readings in PSI. The
// backend serializes the corners in camelCase.
type TirePressure struct {
	FrontLeft  int `json:"frontLeft"`
	FrontRight int `json:"frontRight"`
	RearLeft   int `json:"rearLeft"`
	RearRight  int `json:"rearRight"`
}

const serviceDateLayout = "2006-01-02"

// ServiceDate is a calendar day. The backend carries it as a plain
// "2006-01-02" string, not an RFC 3339 timestamp.
type ServiceDate struct {
	time.Time
}

// NewServiceDate builds a ServiceDate at midnight UTC.
func NewServiceDate(year int, month time.Month, day int) ServiceDate {
	return ServiceDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d ServiceDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(serviceDateLayout))
}

func (d *ServiceDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(serviceDateLayout, s)
	if err != nil {
		return fmt.Errorf("parse service date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// ServiceRecord is one entry in the vehicle's maintenance history.
type ServiceRecord struct {
	Service string      `json:"service"`
	Date    ServiceDate `json:"date"`
	Mileage int         `json:"mileage"`
}

// Snapshot is the vehicle status the maintenance dashboard renders. The
// field names follow the backend's camelCase wire format.
type Snapshot struct {
	OilLife           int             `json:"oilLife"`
	BatteryHealth     int             `json:"batteryHealth"`
	CurrentMileage    int             `json:"currentMileage"`
	MilesUntilService int             `json:"milesUntilService"`
	EngineTemperature string          `json:"engineTemperature"`
	TemperatureStatus string          `json:"temperatureStatus"`
	Tires             TirePressure    `json:"tirePressure"`
	Alerts            []Alert         `json:"alerts"`
	History           []ServiceRecord `json:"maintenanceHistory"`
}

// FallbackSnapshot returns the placeholder vehicle status shown when the
// backend cannot be reached. Values mirror the demo vehicle the product
// ships with so the dashboard never renders empty gauges.
func FallbackSnapshot() Snapshot {
	return Snapshot{
		OilLife:           72,
		BatteryHealth:     95,
		CurrentMileage:    45230,
		MilesUntilService: 2000,
		EngineTemperature: "Normal",
		TemperatureStatus: "Operating within normal range",
		Tires: TirePressure{
			FrontLeft:  32,
			FrontRight: 32,
			RearLeft:   30,
			RearRight:  31,
		},
		Alerts: []Alert{
			{Type: AlertTypeWarning, Message: "Tire rotation recommended"},
			{Type: AlertTypeInfo, Message: "Oil change due in 2000 miles"},
		},
		History: []ServiceRecord{
			{Service: "Oil Change", Date: NewServiceDate(2024, time.March, 15), Mileage: 43000},
			{Service: "Brake Inspection", Date: NewServiceDate(2024, time.February, 28), Mileage: 42500},
			{Service: "Tire Rotation", Date: NewServiceDate(2024, time.February, 1), Mileage: 41800},
		},
	}
}
