package model

import "github.com/alfredjeanlab/cafedash/internal/tableview"

// Gender of a pet.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// HealthStatus is the last recorded health state of a pet.
type HealthStatus string

const (
	HealthHealthy    HealthStatus = "HEALTHY"
	HealthSick       HealthStatus = "SICK"
	HealthRecovering HealthStatus = "RECOVERING"
	HealthQuarantine HealthStatus = "QUARANTINE"
)

// Breed is an entry in the breed catalog.
type Breed struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Species     Species `json:"species"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func (b Breed) Record() tableview.Record { return toRecord(b) }

// BreedInput is the body for creating or replacing a breed.
type BreedInput struct {
	Name        string `json:"name"`
	SpeciesID   ID     `json:"species_id"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Pet is a cafe animal.
type Pet struct {
	ID           ID           `json:"id"`
	Name         string       `json:"name"`
	Species      Species      `json:"species"`
	Breed        *Breed       `json:"breed,omitempty"`
	Age          int          `json:"age"`
	Gender       Gender       `json:"gender,omitempty"`
	Color        string       `json:"color,omitempty"`
	Weight       float64      `json:"weight,omitempty"`
	HealthStatus HealthStatus `json:"health_status,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	ArrivalDate  string       `json:"arrival_date,omitempty"`
}

func (p Pet) Record() tableview.Record { return toRecord(p) }

// PetInput is the body for creating or replacing a pet.
type PetInput struct {
	Name         string       `json:"name"`
	SpeciesID    ID           `json:"species_id"`
	BreedID      ID           `json:"breed_id,omitempty"`
	Age          int          `json:"age"`
	Gender       Gender       `json:"gender,omitempty"`
	Color        string       `json:"color,omitempty"`
	Weight       float64      `json:"weight,omitempty"`
	HealthStatus HealthStatus `json:"health_status,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	ArrivalDate  string       `json:"arrival_date,omitempty"`
}

// VaccineType configures a vaccine and how often it must be repeated.
type VaccineType struct {
	ID             ID      `json:"id"`
	Name           string  `json:"name"`
	Species        Species `json:"species"`
	Description    string  `json:"description,omitempty"`
	IntervalMonths int     `json:"interval_months"`
	IsRequired     bool    `json:"is_required"`
}

func (v VaccineType) Record() tableview.Record { return toRecord(v) }

// VaccineTypeInput is the body for creating or replacing a vaccine type.
type VaccineTypeInput struct {
	Name           string `json:"name"`
	SpeciesID      ID     `json:"species_id"`
	Description    string `json:"description,omitempty"`
	IntervalMonths int    `json:"interval_months"`
	IsRequired     bool   `json:"is_required"`
}
