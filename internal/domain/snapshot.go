package domain

// Snapshot is the complete day→ordered-tasks mapping at one instant,
// the unit of persistence. Bucket order is the order the user last
// established; it is never re-sorted. A bucket with no tasks is
// removed from the mapping, never kept as an empty slice.
type Snapshot map[DayKey][]Task

// Clone returns a deep copy of the snapshot. Buckets in the copy share
// no backing arrays with the original.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for day, bucket := range s {
		cp := make([]Task, len(bucket))
		copy(cp, bucket)
		out[day] = cp
	}
	return out
}

// Len returns the total number of tasks across all buckets.
func (s Snapshot) Len() int {
	n := 0
	for _, bucket := range s {
		n += len(bucket)
	}
	return n
}
