package models

// ResourceType identifies one of the five staffable hospital resource pools.
type ResourceType string

const (
	OR             ResourceType = "OR"
	ABed           ResourceType = "A_BED"
	BBed           ResourceType = "B_BED"
	Intake         ResourceType = "INTAKE"
	ERPractitioner ResourceType = "ER_PRACTITIONER"
)

// ResourceTypes lists all resource types in a stable order.
var ResourceTypes = []ResourceType{OR, ABed, BBed, Intake, ERPractitioner}

// Lifecycle is the state label the simulation engine attaches to each
// report callback. Planners ignore states they do not recognize.
type Lifecycle string

const (
	CaseArrival       Lifecycle = "CASE_ARRIVAL"
	ActivateTask      Lifecycle = "ACTIVATE_TASK"
	ActivateEvent     Lifecycle = "ACTIVATE_EVENT"
	Waiting           Lifecycle = "WAITING"
	StartTask         Lifecycle = "START_TASK"
	CompleteTask      Lifecycle = "COMPLETE_TASK"
	CompleteEvent     Lifecycle = "COMPLETE_EVENT"
	CompleteCase      Lifecycle = "COMPLETE_CASE"
	Replan            Lifecycle = "REPLAN"
	Reschedule        Lifecycle = "RESCHEDULE"
	Overtime          Lifecycle = "OVERTIME"
	PlannedStaffLT1W  Lifecycle = "PLANNED_STAFF_LT_1W"
	PlannedStaffGE1W  Lifecycle = "PLANNED_STAFF_GE_1W"
	ScheduleResources Lifecycle = "SCHEDULE_RESOURCES"
)

// PlannedCase is one admission decision: the case and the simulation hour
// at which it should be admitted.
type PlannedCase struct {
	CaseID string
	Time   int
}

// Commitment is one capacity decision: from Time on, Capacity resources of
// the given type should be staffed.
type Commitment struct {
	Resource ResourceType
	Time     int
	Capacity int
}

// Result holds the four KPIs a simulation run reports back.
type Result struct {
	WaitingTimeForAdmission float64 `json:"waiting_time_for_admission" yaml:"waiting_time_for_admission"`
	WaitingTimeInHospital   float64 `json:"waiting_time_in_hospital" yaml:"waiting_time_in_hospital"`
	Nervousness             float64 `json:"nervousness" yaml:"nervousness"`
	PersonnelCost           float64 `json:"personnel_cost" yaml:"personnel_cost"`
}

// DayKey addresses one weekday's capacity for a resource type.
// Day runs 1 (Monday) through 7 (Sunday).
type DayKey struct {
	Resource ResourceType
	Day      int
}

// CapacitySchedule maps (resource, weekday) to the staffed capacity.
type CapacitySchedule map[DayKey]int

// Get returns the capacity for a resource on a weekday, or 0 if unset.
func (c CapacitySchedule) Get(r ResourceType, day int) int {
	return c[DayKey{Resource: r, Day: day}]
}

// MaxCapacity is the hard per-type staffing cap the engine enforces.
var MaxCapacity = map[ResourceType]int{
	OR:             5,
	ABed:           30,
	BBed:           40,
	Intake:         4,
	ERPractitioner: 9,
}

// DefaultCapacity returns a weekly schedule with every resource staffed at
// its maximum on every day. Beds stay at maximum to avoid downstream
// bottlenecks.
func DefaultCapacity() CapacitySchedule {
	caps := make(CapacitySchedule, len(ResourceTypes)*7)
	for day := 1; day <= 7; day++ {
		for _, r := range ResourceTypes {
			caps[DayKey{Resource: r, Day: day}] = MaxCapacity[r]
		}
	}
	return caps
}
