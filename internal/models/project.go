package models

import "time"

// Project is the authoritative source record for a job. Crew, transport,
// material and equipment allocations hang off it and feed the estimated side
// of cost reports.
type Project struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	ClientName       string    `json:"client_name"`
	ClientContact    string    `json:"client_contact"`
	Location         string    `json:"location"`
	ContractValue    float64   `json:"contract_value"`
	OverheadEstimate float64   `json:"overhead_estimate"`
	OtherEstimate    float64   `json:"other_estimate"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CrewAssignment struct {
	ID        int     `json:"id"`
	ProjectID int     `json:"project_id"`
	Role      string  `json:"role"`
	Headcount int     `json:"headcount"`
	DayRate   float64 `json:"day_rate"`
	Days      float64 `json:"days"`
}

type TransportAssignment struct {
	ID          int     `json:"id"`
	ProjectID   int     `json:"project_id"`
	Vehicle     string  `json:"vehicle"`
	Trips       int     `json:"trips"`
	RatePerTrip float64 `json:"rate_per_trip"`
}

type MaterialAllocation struct {
	ID          int     `json:"id"`
	ProjectID   int     `json:"project_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
}

type EquipmentAllocation struct {
	ID        int     `json:"id"`
	ProjectID int     `json:"project_id"`
	Item      string  `json:"item"`
	Units     int     `json:"units"`
	DayRate   float64 `json:"day_rate"`
	Days      float64 `json:"days"`
}

// ProjectSource bundles everything a cost report recalculation reads from the
// project side in one fetch.
type ProjectSource struct {
	Project   *Project              `json:"project"`
	Crew      []CrewAssignment      `json:"crew"`
	Transport []TransportAssignment `json:"transport"`
	Materials []MaterialAllocation  `json:"materials"`
	Equipment []EquipmentAllocation `json:"equipment"`
}
