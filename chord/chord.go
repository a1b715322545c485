package chord

import (
	"fmt"
	"strings"

	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/duration"
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/pkg/errors"
)

var (
	ErrNoNotes     = errors.New("chord needs at least one note")
	ErrUnknownType = errors.New("unknown note type")
	ErrNoPitch     = errors.New("pitched note without pitch")
	ErrBadPitch    = errors.New("pitch has no MIDI number")
)

// Group splits records into chords. A record flagged Chord joins the
// chord started by the record before it.
func Group(records []model.NoteRecord) [][]model.NoteRecord {
	var res [][]model.NoteRecord
	for _, r := range records {
		if r.Chord && len(res) > 0 {
			res[len(res)-1] = append(res[len(res)-1], r)
			continue
		}
		res = append(res, []model.NoteRecord{r})
	}
	return res
}

func noteType(base model.NoteRecord, divisions int) (string, error) {
	if base.Type != "" {
		t, ok := constants.NoteTypeDict[base.Type]
		if !ok {
			return "", errors.Wrapf(ErrUnknownType, "%q", base.Type)
		}
		return t, nil
	}
	return duration.Classify(base.Duration, divisions, false)
}

func CreateKey(p model.Pitch) (string, string) {
	key := strings.ToLower(p.Step)
	accidental := constants.AccidentalDict[p.Accidental]
	key += accidental
	return fmt.Sprintf("%v/%v", key, p.Octave), accidental
}

// CreateStaveNote builds one note, chord or rest from simultaneous records.
// The first record decides duration, dots and stem.
func CreateStaveNote(notes []model.NoteRecord, clef string, divisions int) (*vex.StaveNote, error) {
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}
	base := notes[0]
	d, err := noteType(base, divisions)
	if err != nil {
		return nil, err
	}

	var keys []string
	var accidentals []string
	var pitches []int
	if len(notes) == 1 && base.IsRest() {
		d += "r"
		keys = append(keys, constants.DefaultRestPitch)
		clef = ""
	} else {
		for _, n := range notes {
			if n.Pitch == nil {
				return nil, ErrNoPitch
			}
			key, accidental := CreateKey(*n.Pitch)
			midi, ok := n.Pitch.MIDI()
			if !ok {
				return nil, errors.Wrapf(ErrBadPitch, "%v", key)
			}
			keys = append(keys, key)
			accidentals = append(accidentals, accidental)
			pitches = append(pitches, midi)
		}
	}

	d += strings.Repeat("d", base.Dots)

	staveNote, err := vex.NewStaveNote(vex.StaveNoteStruct{Keys: keys, Duration: d, Clef: clef, Pitches: pitches})
	if err != nil {
		return nil, err
	}

	for i, accidental := range accidentals {
		if accidental != "" {
			staveNote.AddAccidental(i, vex.NewAccidental(accidental))
		}
	}

	for i := 0; i < base.Dots; i++ {
		staveNote.AddDotToAll()
	}

	// stems come out inverted from the source layout
	if base.Stem == "up" {
		staveNote.SetStemDirection(vex.StemDown)
	}

	return staveNote, nil
}
