package lights

// Store holds the last requested state of each arbitrated source. It has no
// locking of its own; the Device mutex guards it.
type Store struct {
	slots [4]State
}

func slot(src Source) int {
	switch src {
	case SourceNotification:
		return 0
	case SourceBattery:
		return 1
	case SourceButtons:
		return 2
	case SourceAttention:
		return 3
	default:
		return -1
	}
}

// Set overwrites the slot for src and returns the stored copy. Unknown
// sources are ignored.
func (s *Store) Set(src Source, state State) State {
	i := slot(src)
	if i < 0 {
		return state
	}
	s.slots[i] = state
	return s.slots[i]
}

// Get returns the slot for src.
func (s *Store) Get(src Source) State {
	i := slot(src)
	if i < 0 {
		return State{}
	}
	return s.slots[i]
}
