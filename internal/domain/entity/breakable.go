package entity

// BreakableKind is the upgrade-gated way an obstacle can be destroyed
type BreakableKind int

const (
	BreakableCut BreakableKind = iota
	BreakableSmash
)

// String returns the breakable kind name
func (k BreakableKind) String() string {
	switch k {
	case BreakableCut:
		return "Cut"
	case BreakableSmash:
		return "Smash"
	default:
		return "Unknown"
	}
}
