package cloud

// ResourceStatus is the probed state of one named resource. Probes never
// guess: anything that is not clearly active or inactive-but-present maps
// to Absent or Other so the reconciler can handle every case exhaustively.
type ResourceStatus int

const (
	StatusAbsent ResourceStatus = iota
	StatusActive
	StatusInactive
	StatusOther
)

func (s ResourceStatus) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	case StatusOther:
		return "other"
	}
	return "unknown"
}
