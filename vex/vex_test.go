package vex

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]Duration{
		"q":    {Base: "q"},
		"8d":   {Base: "8", Dots: 1},
		"hr":   {Base: "h", Rest: true},
		"qrdd": {Base: "q", Dots: 2, Rest: true},
		"1/2":  {Base: "1/2"},
	}
	for code, expected := range cases {
		t.Run(code, func(t *testing.T) {
			d, err := ParseDuration(code)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(expected, d)
			assert.Equal(code, d.String())
		})
	}
}

func TestParseDurationRejectsUnknown(t *testing.T) {
	_, err := ParseDuration("x")
	assert.True(t, errors.Is(err, ErrBadDuration))

	_, err = ParseDuration("")
	assert.True(t, errors.Is(err, ErrBadDuration))
}

func TestDurationTicks(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(4096, Duration{Base: "q"}.Ticks())
	assert.Equal(6144, Duration{Base: "q", Dots: 1}.Ticks())
	assert.Equal(7168, Duration{Base: "q", Dots: 2}.Ticks())
	assert.Equal(Resolution, Duration{Base: "w"}.Ticks())
}

func TestStaveNoteBuilders(t *testing.T) {
	n, err := NewStaveNote(StaveNoteStruct{Keys: []string{"c/4", "e/4"}, Duration: "qd", Clef: "treble"})
	require.NoError(t, err)
	n.AddAccidental(1, NewAccidental("b")).AddDotToAll().SetStemDirection(StemDown)

	assert := assert.New(t)
	assert.Equal([]string{"c/4", "e/4"}, n.Keys)
	assert.Equal(map[int]string{1: "b"}, n.Accidentals)
	assert.Equal(1, n.Dots)
	assert.Equal(StemDown, n.StemDirection)
	assert.Equal(6144, n.Ticks())
	assert.False(n.IsRest())
	assert.False(n.IsGhost())
}

func TestVoiceStrictOverflow(t *testing.T) {
	q, _ := NewStaveNote(StaveNoteStruct{Keys: []string{"c/4"}, Duration: "w"})
	h, _ := NewGhostNote("h")

	v := NewVoice(VoiceTime{NumBeats: 4, BeatValue: 4})
	_, err := v.AddTickables([]Tickable{q, h})
	assert.True(t, errors.Is(err, ErrVoiceOverflow))

	soft := NewVoice(VoiceTime{NumBeats: 4, BeatValue: 4}).SetMode(SoftMode)
	_, err = soft.AddTickables([]Tickable{q, h})
	assert.NoError(t, err)
	assert.Equal(t, Resolution+Resolution/2, soft.TicksUsed())
	assert.True(t, soft.IsComplete())
}

func TestFormatterAlignsVoices(t *testing.T) {
	h1, _ := NewStaveNote(StaveNoteStruct{Keys: []string{"c/5"}, Duration: "h"})
	h2, _ := NewStaveNote(StaveNoteStruct{Keys: []string{"d/5"}, Duration: "h"})
	ghost, _ := NewGhostNote("h")
	low, _ := NewStaveNote(StaveNoteStruct{Keys: []string{"c/4"}, Duration: "h"})

	top := NewVoice(VoiceTime{NumBeats: 4, BeatValue: 4}).SetMode(SoftMode)
	top.AddTickables([]Tickable{h1, h2})
	bottom := NewVoice(VoiceTime{NumBeats: 4, BeatValue: 4}).SetMode(SoftMode)
	bottom.AddTickables([]Tickable{ghost, low})

	stave := NewStave(0, 0, 0, 410)
	f := NewFormatter()
	require.NoError(t, f.JoinVoices([]*Voice{top, bottom}))
	require.NoError(t, f.FormatToStave([]*Voice{top, bottom}, stave))

	assert := assert.New(t)
	assert.Equal(10.0, h1.X())
	assert.Equal(10.0, ghost.X())
	assert.Equal(210.0, h2.X())
	assert.Equal(h2.X(), low.X())
}

func TestFormatterRejectsIncompleteStrictVoice(t *testing.T) {
	q, _ := NewStaveNote(StaveNoteStruct{Keys: []string{"c/4"}, Duration: "q"})
	v := NewVoice(VoiceTime{NumBeats: 4, BeatValue: 4})
	v.AddTickables([]Tickable{q})

	err := NewFormatter().FormatToStave([]*Voice{v}, NewStave(0, 0, 0, 400))
	assert.True(t, errors.Is(err, ErrIncompleteVoice))
}

func TestStaveNotePitchesMatchKeys(t *testing.T) {
	n, err := NewStaveNote(StaveNoteStruct{Keys: []string{"c/4", "e/4"}, Duration: "q", Pitches: []int{60, 64}})
	require.NoError(t, err)
	assert.Equal(t, []int{60, 64}, n.Pitches)

	_, err = NewStaveNote(StaveNoteStruct{Keys: []string{"c/4", "e/4"}, Duration: "q", Pitches: []int{60}})
	assert.Error(t, err)
}
