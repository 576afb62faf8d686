package seeders

import "ppe-tracker/internal/entities"

type statusSeed struct {
	Code string
	Name string
}

var statusesData = []statusSeed{
	{Code: entities.StatusCodeOperational, Name: "Operational"},
	{Code: entities.StatusCodeNeedsRepair, Name: "Needs repair"},
	{Code: entities.StatusCodeDecommissioned, Name: "Decommissioned"},
}

type equipmentTypeSeed struct {
	Name        string
	Description string
}

var equipmentTypesData = []equipmentTypeSeed{
	{Name: "Full body harness", Description: "Fall arrest harness"},
	{Name: "Energy absorbing lanyard", Description: "Lanyard with shock absorber"},
	{Name: "Helmet", Description: "Climbing and work at height helmet"},
	{Name: "Carabiner", Description: "Locking connector"},
	{Name: "Descender", Description: "Rope descent device"},
}

// equipmentSeed dates are relative to the seeding day so the sample covers
// every alert state.
type equipmentSeed struct {
	CustomIdentifier string
	TypeName         string
	Brand            string
	Model            string
	SerialNumber     string
	Size             string
	Color            string
	CommissionedAgo  int // months
	IntervalMonths   int
}

var equipmentsData = []equipmentSeed{
	{"HAR-001", "Full body harness", "Petzl", "Avao Bod", "PZ-18A-0001", "M", "Black", 2, 12},
	{"HAR-002", "Full body harness", "Petzl", "Newton", "PZ-19C-0042", "L", "Yellow", 12, 12},
	{"LAN-001", "Energy absorbing lanyard", "Kong", "Y-Absorber", "KG-77-310", "", "Red", 13, 12},
	{"HLM-001", "Helmet", "Petzl", "Vertex Vent", "PZ-HV-5531", "", "White", 5, 6},
	{"CRB-001", "Carabiner", "Camp", "HMS Compact", "CP-11-0098", "", "", 1, 12},
	{"DSC-001", "Descender", "Petzl", "I'D S", "PZ-ID-7710", "", "", 7, 6},
}
