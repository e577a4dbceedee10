package effects

import "fmt"

// Resource names a mutable quantity on a player. The set is closed: cards and
// goals that reference anything else are data errors.
type Resource string

const (
	ResourceMoney         Resource = "money"
	ResourceNerves        Resource = "nerves"
	ResourceDocumentLevel Resource = "document_level"
	ResourceLanguageLevel Resource = "language_level"
	ResourceDocumentCards Resource = "document_cards"
	ResourceItems         Resource = "items"
)

// KnownResources lists every resource the player model carries.
var KnownResources = []Resource{
	ResourceMoney,
	ResourceNerves,
	ResourceDocumentLevel,
	ResourceLanguageLevel,
	ResourceDocumentCards,
	ResourceItems,
}

// IsKnown reports whether r is part of the player model.
func (r Resource) IsKnown() bool {
	for _, known := range KnownResources {
		if r == known {
			return true
		}
	}
	return false
}

// Target is the mutable side of a player as seen by the effect applier.
// Implementations clamp values to their declared floor/ceiling; the applier
// records the clamping in its log.
type Target interface {
	// ID returns a stable identifier for log entries.
	ID() string
	// Resource returns the current value of a resource, or ErrUnknownResource.
	Resource(name Resource) (int, error)
	// Clamp returns value bounded to the resource's declared floor/ceiling.
	Clamp(name Resource, value int) int
	// SetResource stores a value without further clamping.
	SetResource(name Resource, value int) error
}

// ErrUnknownResource marks an effect or goal referencing a resource the
// player model does not have. It is a data error: the offending card is
// skipped, the run continues.
var ErrUnknownResource = fmt.Errorf("unknown resource")
