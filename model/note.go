package model

import (
	"strings"

	"github.com/jsphweid/vexvoice/constants"
)

type Pitch struct {
	Step   string
	Octave int

	// semitones, whether or not an accidental is shown
	Alter int

	// MusicXML accidental name ("sharp", "flat", ...), empty when no glyph is shown
	Accidental string
}

// MIDI returns the sounding note number. ok is false for an unknown step or
// a note outside 0-127.
func (p Pitch) MIDI() (n int, ok bool) {
	semitone, ok := constants.StepSemitones[strings.ToUpper(p.Step)]
	if !ok {
		return 0, false
	}
	n = (p.Octave+1)*12 + semitone + p.Alter
	return n, n >= 0 && n <= 127
}

// NoteRecord is one <note> of the source document. A record without a Pitch
// is a rest.
type NoteRecord struct {
	Duration int
	Voice    string
	Staff    int
	Pitch    *Pitch
	Rest     bool
	Type     string
	Dots     int
	Stem     string

	// NOTE: set on every note of a chord except the first one
	Chord bool
}

func (n NoteRecord) IsRest() bool {
	return n.Rest || n.Pitch == nil
}

func (n NoteRecord) StaffOrDefault() int {
	if n.Staff <= 0 {
		return 1
	}
	return n.Staff
}

type TimeSignature struct {
	Beats    int `json:"beats"`
	BeatType int `json:"beat_type"`
}
