package midi

import (
	"strconv"
	"strings"

	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/model"
	"github.com/pkg/errors"
)

var ErrBadKey = errors.New("invalid key")

// KeyToMIDI converts a stave note key like "eb/5" to a MIDI note number. The
// key only spells what is drawn, so notes built from records use
// StaveNote.Pitches instead.
func KeyToMIDI(key string) (uint8, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 2 || len(parts[0]) == 0 {
		return 0, errors.Wrapf(ErrBadKey, "%q", key)
	}
	name := strings.ToLower(parts[0])
	semitone, ok := constants.StepSemitones[strings.ToUpper(name[:1])]
	if !ok {
		return 0, errors.Wrapf(ErrBadKey, "%q", key)
	}
	for _, c := range name[1:] {
		switch c {
		case '#':
			semitone++
		case 'b':
			semitone--
		case 'n':
		default:
			return 0, errors.Wrapf(ErrBadKey, "%q", key)
		}
	}
	octave, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.Wrapf(ErrBadKey, "%q", key)
	}
	n := (octave+1)*12 + semitone
	if n < 0 || n > 127 {
		return 0, errors.Wrapf(ErrBadKey, "%q is out of range", key)
	}
	return uint8(n), nil
}

var sharpNames = []struct {
	step  string
	alter int
}{
	{"C", 0}, {"C", 1}, {"D", 0}, {"D", 1}, {"E", 0}, {"F", 0},
	{"F", 1}, {"G", 0}, {"G", 1}, {"A", 0}, {"A", 1}, {"B", 0},
}

// PitchFromMIDI spells n with sharps.
func PitchFromMIDI(n uint8) model.Pitch {
	name := sharpNames[n%12]
	p := model.Pitch{Step: name.step, Alter: name.alter, Octave: int(n)/12 - 1}
	if name.alter == 1 {
		p.Accidental = "sharp"
	}
	return p
}
