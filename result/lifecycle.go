package result

import "fmt"

// Lifecycle tags a value or codec with API stability. The zero value is
// Stable. Joining two lifecycles with Add keeps the weaker guarantee.
type Lifecycle struct {
	kind  lifecycleKind
	since int
}

type lifecycleKind uint8

const (
	kindStable lifecycleKind = iota
	kindDeprecated
	kindExperimental
)

func Stable() Lifecycle { return Lifecycle{} }

func Experimental() Lifecycle { return Lifecycle{kind: kindExperimental} }

// Deprecated marks an element deprecated since the given version.
func Deprecated(since int) Lifecycle { return Lifecycle{kind: kindDeprecated, since: since} }

// Add joins two lifecycles. Experimental absorbs everything, two deprecations
// keep the earlier since, Stable is the identity. Add is commutative and
// associative.
func (l Lifecycle) Add(other Lifecycle) Lifecycle {
	if l.kind == kindExperimental || other.kind == kindExperimental {
		return Experimental()
	}
	if l.kind == kindDeprecated {
		if other.kind == kindDeprecated && other.since < l.since {
			return other
		}
		return l
	}
	if other.kind == kindDeprecated {
		return other
	}
	return Stable()
}

func (l Lifecycle) String() string {
	switch l.kind {
	case kindExperimental:
		return "Experimental"
	case kindDeprecated:
		return fmt.Sprintf("Deprecated(%d)", l.since)
	default:
		return "Stable"
	}
}
