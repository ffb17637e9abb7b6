package groupreservation

type Status string

const (
	StatusOpen      Status = "open"
	StatusConfirmed Status = "confirmed"
	StatusFull      Status = "full"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusConfirmed, StatusFull, StatusClosed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s is absorbing: no participant changes and no
// further transitions are permitted out of it.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusClosed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// AcceptsParticipants reports whether a join is permitted in this status.
// A full reservation does not accept joins; a terminal one accepts nothing.
func (s Status) AcceptsParticipants() bool {
	return s == StatusOpen || s == StatusConfirmed
}

// DeriveStatus is the single transition function recomputed after every
// participant-count change. Terminal states are handled by the caller; this
// only maps fill level to lifecycle status.
func DeriveStatus(current, minParticipants, maxParticipants int) Status {
	switch {
	case current <= 0:
		return StatusCancelled
	case current < minParticipants:
		return StatusOpen
	case current < maxParticipants:
		return StatusConfirmed
	default:
		return StatusFull
	}
}
