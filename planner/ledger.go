package planner

// SlotKey addresses one admission bucket: a specific hour of a specific
// weekday in a specific week.
type SlotKey struct {
	Week int
	Day  int // 1..7, Monday = 1
	Hour int // 0..23
}

// Ledger tracks admissions already placed per slot so repeated planning
// calls never double-book a bucket. Counts are never decremented.
type Ledger map[SlotKey]int

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// Used returns the number of admissions already placed in the slot.
func (l Ledger) Used(k SlotKey) int {
	return l[k]
}

// Add records n more admissions in the slot.
func (l Ledger) Add(k SlotKey, n int) {
	l[k] += n
}

// Remaining returns how much of a slot's sub-quota is still open,
// floored at zero.
func (l Ledger) Remaining(k SlotKey, quota int) int {
	room := quota - l[k]
	if room < 0 {
		return 0
	}
	return room
}
