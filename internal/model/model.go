// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups athletes by competitive class (e.g. Scale, RX).
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TrainingCenter is the gym an athlete trains at.
type TrainingCenter struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// NamedRef points to a related entity by its unique name, as clients send it.
type NamedRef struct {
	Name string `json:"name"`
}

// Athlete is a registered competitor.
type Athlete struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	CPF            string    `json:"cpf"`
	Age            int       `json:"age"`
	Weight         float64   `json:"weight"`
	Height         float64   `json:"height"`
	Sex            string    `json:"sex"` // M or F
	Category       NamedRef  `json:"category"`
	TrainingCenter NamedRef  `json:"training_center"`
	CreatedAt      time.Time `json:"created_at"`
}

// AthleteSummary is the listing projection of an athlete.
type AthleteSummary struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	TrainingCenter string `json:"training_center"`
}

// Summary projects an athlete into its listing shape.
func (a Athlete) Summary() AthleteSummary {
	return AthleteSummary{Name: a.Name, Category: a.Category.Name, TrainingCenter: a.TrainingCenter.Name}
}

// AthleteFilter narrows athlete listings. Empty fields match everything.
type AthleteFilter struct {
	Name string
	CPF  string
}

// AthletePatch holds the mutable athlete fields; nil means unchanged.
type AthletePatch struct {
	Name *string
	Age  *int
}

// Empty reports whether the patch changes nothing.
func (p AthletePatch) Empty() bool { return p.Name == nil && p.Age == nil }
