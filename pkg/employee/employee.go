package employee

import "time"

// Job is the function an employee is assigned to (accountant, driver,
// logistics officer). Jobs are shared reference data, not per-structure.
type Job struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
}

// Employee links a person to a job within a structure. RankID is only set
// for military personnel; civilian employees carry none.
type Employee struct {
	ID                 int64
	RegistrationNumber string
	HiredOn            *time.Time
	PersonID           int64
	JobID              int64
	StructureID        int64
	RankID             *int64
}
