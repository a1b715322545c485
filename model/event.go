package model

type EventKind uint8

const (
	NoteEvent EventKind = iota
	BackupEvent
	ForwardEvent
	AttributesEvent
)

func (k EventKind) String() string {
	switch k {
	case NoteEvent:
		return "note"
	case BackupEvent:
		return "backup"
	case ForwardEvent:
		return "forward"
	case AttributesEvent:
		return "attributes"
	}
	return "unknown"
}

type Event struct {
	Kind       EventKind
	Note       *NoteRecord
	Duration   int
	Attributes *Attributes
}

// Attributes holds the parts of an <attributes> element that changed. Zero
// values mean "unchanged".
type Attributes struct {
	Divisions int
	Time      *TimeSignature
	Staves    int
	Clefs     map[int]string
}
