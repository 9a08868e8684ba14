package model

import (
	"fmt"
	"time"
)

// StorageLocation is where an item sits in the household. The zero value is not a
// valid location.
type StorageLocation int

const (
	Fridge StorageLocation = iota + 1
	Freezer
	Pantry
)

// Wire names used by the remote inventory service.
const (
	wireFridge  = "Frigo"
	wireFreezer = "Congelo"
	wirePantry  = "Placard"
)

// StorageLocations lists every location in cycle order.
var StorageLocations = []StorageLocation{Fridge, Freezer, Pantry}

// Next returns the following location in the Fridge -> Freezer -> Pantry -> Fridge cycle.
// An invalid location maps to Fridge.
func (l StorageLocation) Next() StorageLocation {
	switch l {
	case Fridge:
		return Freezer
	case Freezer:
		return Pantry
	default:
		return Fridge
	}
}

func (l StorageLocation) Valid() bool {
	return l >= Fridge && l <= Pantry
}

// String returns the wire name.
func (l StorageLocation) String() string {
	switch l {
	case Fridge:
		return wireFridge
	case Freezer:
		return wireFreezer
	case Pantry:
		return wirePantry
	default:
		return fmt.Sprintf("StorageLocation(%d)", int(l))
	}
}

func ParseStorageLocation(s string) (StorageLocation, error) {
	switch s {
	case wireFridge:
		return Fridge, nil
	case wireFreezer:
		return Freezer, nil
	case wirePantry:
		return Pantry, nil
	default:
		return 0, fmt.Errorf("unknown storage location %q", s)
	}
}

func (l StorageLocation) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid storage location %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *StorageLocation) UnmarshalText(b []byte) error {
	parsed, err := ParseStorageLocation(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// InventoryItem is a product tracked in a user's fridge, freezer or pantry.
// ExpirationDate carries a calendar date only, stored as midnight UTC.
type InventoryItem struct {
	ID              string
	Name            string
	ExpirationDate  time.Time
	StorageLocation StorageLocation
}

// WithLocation returns a copy of the item moved to loc.
func (i InventoryItem) WithLocation(loc StorageLocation) InventoryItem {
	i.StorageLocation = loc
	return i
}

// UrgencyLevel buckets the time left before an item expires.
type UrgencyLevel int

const (
	Critical UrgencyLevel = iota + 1
	Warning
	Safe
)

func (u UrgencyLevel) String() string {
	switch u {
	case Critical:
		return "critical"
	case Warning:
		return "warning"
	case Safe:
		return "safe"
	default:
		return "unknown"
	}
}

// ResponseKind selects which notice a caller shows for an item.
type ResponseKind int

const (
	ShortNotice ResponseKind = iota + 1
	LongNotice
)

func (r ResponseKind) String() string {
	switch r {
	case ShortNotice:
		return "short notice"
	case LongNotice:
		return "long notice"
	default:
		return "unknown"
	}
}
