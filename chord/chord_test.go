package chord

import (
	"testing"

	"github.com/jsphweid/vexvoice/duration"
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pitched(step string, octave int, accidental string) model.NoteRecord {
	return model.NoteRecord{
		Duration: 4,
		Pitch:    &model.Pitch{Step: step, Octave: octave, Accidental: accidental},
	}
}

func TestGroupsChords(t *testing.T) {
	c := pitched("C", 4, "")
	e := pitched("E", 4, "")
	e.Chord = true
	g := pitched("G", 4, "")
	g.Chord = true
	d := pitched("D", 4, "")

	groups := Group([]model.NoteRecord{c, e, g, d})

	assert := assert.New(t)
	assert.Len(groups, 2)
	assert.Len(groups[0], 3)
	assert.Len(groups[1], 1)
}

func TestCreatesChordWithAccidentals(t *testing.T) {
	notes := []model.NoteRecord{
		pitched("C", 4, ""),
		pitched("E", 4, "flat"),
		pitched("G", 4, "sharp"),
	}
	n, err := CreateStaveNote(notes, "treble", 4)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"c/4", "eb/4", "g#/4"}, n.Keys)
	assert.Equal("q", n.Duration())
	assert.Equal("treble", n.Clef)
	assert.Equal(map[int]string{1: "b", 2: "#"}, n.Accidentals)
	assert.Equal(vex.StemUp, n.StemDirection)
}

func TestPrefersExplicitType(t *testing.T) {
	n := pitched("A", 3, "")
	n.Type = "half"
	res, err := CreateStaveNote([]model.NoteRecord{n}, "bass", 4)
	require.NoError(t, err)
	assert.Equal(t, "h", res.Duration())
}

func TestUnknownExplicitType(t *testing.T) {
	n := pitched("A", 3, "")
	n.Type = "semibreve-ish"
	_, err := CreateStaveNote([]model.NoteRecord{n}, "bass", 4)
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestRest(t *testing.T) {
	rest := model.NoteRecord{Duration: 8, Rest: true}
	n, err := CreateStaveNote([]model.NoteRecord{rest}, "treble", 4)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"b/4"}, n.Keys)
	assert.Equal("hr", n.Duration())
	assert.True(n.IsRest())
	assert.Equal("", n.Clef)
	assert.Empty(n.Accidentals)
}

func TestDots(t *testing.T) {
	n := pitched("F", 5, "")
	n.Type = "quarter"
	n.Dots = 2
	res, err := CreateStaveNote([]model.NoteRecord{n}, "treble", 4)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("qdd", res.Duration())
	assert.Equal(2, res.Dots)
	assert.Equal(7168, res.Ticks())
}

func TestStemUpIsInverted(t *testing.T) {
	n := pitched("F", 5, "")
	n.Stem = "up"
	res, err := CreateStaveNote([]model.NoteRecord{n}, "treble", 4)
	require.NoError(t, err)
	assert.Equal(t, vex.StemDown, res.StemDirection)
}

func TestSameInputSameToken(t *testing.T) {
	notes := []model.NoteRecord{pitched("C", 4, "natural"), pitched("E", 4, "flat")}
	a, err := CreateStaveNote(notes, "treble", 4)
	require.NoError(t, err)
	b, err := CreateStaveNote(notes, "treble", 4)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(a.Keys, b.Keys)
	assert.Equal(a.Duration(), b.Duration())
	assert.Equal(a.Accidentals, b.Accidentals)
}

func TestClassificationFailurePropagates(t *testing.T) {
	n := pitched("C", 4, "")
	n.Duration = 4 << 22
	_, err := CreateStaveNote([]model.NoteRecord{n}, "treble", 4)
	assert.True(t, errors.Is(err, duration.ErrClassification))
}

func TestEmpty(t *testing.T) {
	_, err := CreateStaveNote(nil, "treble", 4)
	assert.True(t, errors.Is(err, ErrNoNotes))
}

func TestPitchesFollowAlterNotAccidental(t *testing.T) {
	shown := pitched("F", 5, "sharp")
	shown.Pitch.Alter = 1
	implied := pitched("F", 5, "")
	implied.Pitch.Alter = 1
	implied.Chord = true
	natural := pitched("B", 4, "")
	natural.Chord = true

	n, err := CreateStaveNote([]model.NoteRecord{shown, implied, natural}, "treble", 4)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{"f#/5", "f/5", "b/4"}, n.Keys)
	assert.Equal([]int{78, 78, 71}, n.Pitches)
}

func TestRestHasNoPitches(t *testing.T) {
	n, err := CreateStaveNote([]model.NoteRecord{{Duration: 4, Rest: true}}, "treble", 4)
	require.NoError(t, err)
	assert.Empty(t, n.Pitches)
}

func TestPitchOutOfRange(t *testing.T) {
	n := pitched("G", 9, "")
	n.Pitch.Alter = 1
	_, err := CreateStaveNote([]model.NoteRecord{n}, "treble", 4)
	assert.True(t, errors.Is(err, ErrBadPitch))
}
