package enumerable

// Action defines the kind of structural change reported for a collection.
type Action int

const (
	// ActionReset means the whole contents changed; listeners must discard everything derived from it.
	ActionReset Action = iota

	// ActionAdd reports a contiguous batch of inserted elements.
	ActionAdd

	// ActionRemove reports a contiguous batch of removed elements.
	ActionRemove

	// ActionReplace reports a contiguous batch of elements whose contents changed in place.
	ActionReplace

	// ActionMove reports a contiguous batch of elements that changed position.
	ActionMove
)

// String provides a string representation of Action for logging and debugging.
func (a Action) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionMove:
		return "move"
	default:
		return "unknown"
	}
}
