// Package maintenance holds view models for the vehicle dashboard page.
package maintenance

import (
	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
	"github.com/carcarepro/carcare-ui/internal/http/ui/viewmodel"
	"github.com/carcarepro/carcare-ui/internal/http/uiutil"
)

// Gauge is a proportional-fill indicator with a numeric label.
type Gauge struct {
	Percent int
	Label   string
	Level   string // good | warn | low, drives the fill color class
}

// NewGauge clamps the value to 0..100 and derives the fill level.
func NewGauge(percent int) Gauge {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	level := "good"
	switch {
	case percent < 30:
		level = "low"
	case percent < 60:
		level = "warn"
	}
	return Gauge{Percent: percent, Label: uiutil.FormatNumber(percent) + "%", Level: level}
}

// Tire is one corner's pressure reading.
type Tire struct {
	Position string // FL, FR, RL, RR
	Label    string
	PSI      int
}

// Alert is one rendered maintenance alert.
type Alert struct {
	Type    string
	Icon    string
	Message string
}

// HistoryRow is one rendered service history entry.
type HistoryRow struct {
	Service string
	Date    string
	Mileage string
}

// Page is the complete maintenance page view model, built whole from one
// snapshot per render.
type Page struct {
	viewmodel.Layout
	OwnerName         string
	OilLife           Gauge
	BatteryHealth     Gauge
	Mileage           string
	MilesUntilService string
	EngineTemperature string
	TemperatureStatus string
	Tires             []Tire
	Alerts            []Alert
	History           []HistoryRow
	Fallback          bool
}

// NewPage builds the page view model from the profile and snapshot.
func NewPage(profile domainauth.Profile, snap model.Snapshot, fallback bool) *Page {
	return &Page{
		OwnerName:         ownerName(profile),
		OilLife:           NewGauge(snap.OilLife),
		BatteryHealth:     NewGauge(snap.BatteryHealth),
		Mileage:           uiutil.FormatNumber(snap.CurrentMileage),
		MilesUntilService: uiutil.FormatNumber(snap.MilesUntilService),
		EngineTemperature: snap.EngineTemperature,
		TemperatureStatus: snap.TemperatureStatus,
		Tires:             tires(snap.Tires),
		Alerts:            alerts(snap.Alerts),
		History:           history(snap.History),
		Fallback:          fallback,
	}
}

func ownerName(profile domainauth.Profile) string {
	if profile.Name != "" {
		return profile.Name
	}
	return profile.Email
}

// tires keeps the fixed FL/FR/RL/RR display order.
func tires(tp model.TirePressure) []Tire {
	return []Tire{
		{Position: "FL", Label: "Front Left", PSI: tp.FrontLeft},
		{Position: "FR", Label: "Front Right", PSI: tp.FrontRight},
		{Position: "RL", Label: "Rear Left", PSI: tp.RearLeft},
		{Position: "RR", Label: "Rear Right", PSI: tp.RearRight},
	}
}

func alerts(in []model.Alert) []Alert {
	out := make([]Alert, 0, len(in))
	for _, a := range in {
		icon := "ℹ️"
		if a.Type == model.AlertTypeWarning {
			icon = "⚠️"
		}
		out = append(out, Alert{Type: string(a.Type), Icon: icon, Message: a.Message})
	}
	return out
}

func history(in []model.ServiceRecord) []HistoryRow {
	out := make([]HistoryRow, 0, len(in))
	for _, rec := range in {
		out = append(out, HistoryRow{
			Service: rec.Service,
			Date:    uiutil.FormatFriendlyDate(rec.Date.Time),
			Mileage: uiutil.FormatNumber(rec.Mileage) + " miles",
		})
	}
	return out
}
