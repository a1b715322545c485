package vex

import "github.com/pkg/errors"

const (
	StemUp   = 1
	StemDown = -1
)

type Tickable interface {
	Duration() string
	Ticks() int
	X() float64
	SetX(x float64)
	IsGhost() bool
}

type tickable struct {
	duration Duration
	x        float64
}

func (t *tickable) Duration() string {
	return t.duration.String()
}

func (t *tickable) Ticks() int {
	return t.duration.Ticks()
}

func (t *tickable) X() float64 {
	return t.x
}

func (t *tickable) SetX(x float64) {
	t.x = x
}

type GhostNote struct {
	tickable
}

func NewGhostNote(duration string) (*GhostNote, error) {
	d, err := ParseDuration(duration)
	if err != nil {
		return nil, err
	}
	return &GhostNote{tickable{duration: d}}, nil
}

func (g *GhostNote) IsGhost() bool {
	return true
}

type Accidental struct {
	Type string
}

func NewAccidental(t string) *Accidental {
	return &Accidental{Type: t}
}

type StaveNoteStruct struct {
	Keys     []string
	Duration string
	Clef     string
	Pitches  []int
}

type StaveNote struct {
	tickable
	Keys          []string
	Clef          string
	Pitches       []int // sounding MIDI numbers per key, empty when unknown
	Accidentals   map[int]string
	Dots          int
	StemDirection int
}

func NewStaveNote(s StaveNoteStruct) (*StaveNote, error) {
	d, err := ParseDuration(s.Duration)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(s.Keys))
	copy(keys, s.Keys)
	var pitches []int
	if len(s.Pitches) > 0 {
		if len(s.Pitches) != len(s.Keys) {
			return nil, errors.Errorf("%d pitches for %d keys", len(s.Pitches), len(s.Keys))
		}
		pitches = append(pitches, s.Pitches...)
	}
	return &StaveNote{
		tickable:      tickable{duration: d},
		Keys:          keys,
		Pitches:       pitches,
		Clef:          s.Clef,
		Accidentals:   make(map[int]string),
		StemDirection: StemUp,
	}, nil
}

func (n *StaveNote) IsGhost() bool {
	return false
}

func (n *StaveNote) IsRest() bool {
	return n.duration.Rest
}

func (n *StaveNote) AddAccidental(index int, a *Accidental) *StaveNote {
	n.Accidentals[index] = a.Type
	return n
}

// AddDotToAll only affects the drawn glyph, the duration code carries the
// rhythmic value.
func (n *StaveNote) AddDotToAll() *StaveNote {
	n.Dots++
	return n
}

func (n *StaveNote) SetStemDirection(direction int) *StaveNote {
	n.StemDirection = direction
	return n
}
