package score

import "github.com/jsphweid/vexvoice/model"

// Attributes tracks the <attributes> state of one part while it is being
// read. It implements voice.AttributesProvider.
type Attributes struct {
	divisions int
	time      model.TimeSignature
	staves    int
	clefs     map[int]string
}

func NewAttributes() *Attributes {
	return &Attributes{
		divisions: 1,
		time:      model.TimeSignature{Beats: 4, BeatType: 4},
		staves:    1,
		clefs:     map[int]string{1: "treble", 2: "bass"},
	}
}

func (a *Attributes) Update(m model.Attributes) {
	if m.Divisions > 0 {
		a.divisions = m.Divisions
	}
	if m.Time != nil && m.Time.Beats > 0 && m.Time.BeatType > 0 {
		a.time = *m.Time
	}
	if m.Staves > 0 {
		a.staves = m.Staves
	}
	for staff, clef := range m.Clefs {
		a.clefs[staff] = clef
	}
}

func (a *Attributes) Divisions() int {
	return a.divisions
}

func (a *Attributes) TimeSignature() model.TimeSignature {
	return a.time
}

func (a *Attributes) Staves() int {
	return a.staves
}

func (a *Attributes) Clef(staff int) string {
	if clef, ok := a.clefs[staff]; ok {
		return clef
	}
	return "treble"
}
