package midi

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/mxml"
	"github.com/jsphweid/vexvoice/score"
	"github.com/jsphweid/vexvoice/util"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestKeyToMIDI(t *testing.T) {
	cases := map[string]uint8{
		"c/4":   60,
		"c#/4":  61,
		"eb/5":  75,
		"bn/4":  71,
		"b/4":   71,
		"a/0":   21,
		"g##/3": 57,
		"cb/4":  59,
	}
	for key, expected := range cases {
		t.Run(fmt.Sprintf("%v is %v", key, expected), func(t *testing.T) {
			n, err := KeyToMIDI(key)
			assert.NoError(t, err)
			assert.Equal(t, expected, n)
		})
	}
}

func TestKeyToMIDIRejectsGarbage(t *testing.T) {
	for _, key := range []string{"", "c4", "h/4", "cx/4", "c/four", "g/10"} {
		_, err := KeyToMIDI(key)
		assert.True(t, errors.Is(err, ErrBadKey), key)
	}
}

func TestPitchFromMIDI(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(model.Pitch{Step: "C", Octave: 4}, PitchFromMIDI(60))
	assert.Equal(model.Pitch{Step: "F", Alter: 1, Octave: 2, Accidental: "sharp"}, PitchFromMIDI(42))
	assert.Equal(model.Pitch{Step: "A", Octave: 0}, PitchFromMIDI(21))

	for n := uint8(21); n < 109; n++ {
		p := PitchFromMIDI(n)
		key := fmt.Sprintf("%v/%v", strings.ToLower(p.Step), p.Octave)
		if p.Alter == 1 {
			key = fmt.Sprintf("%v#/%v", strings.ToLower(p.Step), p.Octave)
		}
		back, err := KeyToMIDI(key)
		assert.NoError(err)
		assert.Equal(n, back)
	}
}

func exportFixture(t *testing.T) *smf.SMF {
	f := util.OpenFileOrPanic("../mxml/testdata/two_staves.musicxml")
	defer f.Close()
	doc, err := mxml.Decode(f)
	require.NoError(t, err)
	s, err := score.Render(doc, score.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(s, &buf, DefaultExportOptions()))

	mf, err := ReadMidi(&buf)
	require.NoError(t, err)
	return mf
}

func TestExportFixture(t *testing.T) {
	mf := exportFixture(t)

	assert := assert.New(t)
	assert.Len(mf.Tracks, 3)

	var onsets []uint8
	var lastOnTick int64
	for _, track := range mf.Tracks[1:] {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				onsets = append(onsets, key)
				if absTicks > lastOnTick {
					lastOnTick = absTicks
				}
			}
		}
	}
	assert.Len(onsets, 9)
	// B4 of the second voice starts one beat into measure 2
	assert.Contains(onsets, uint8(71))
	assert.Equal(int64(4*960+2*960), lastOnTick)
}

func countNotes(track smf.Track) int {
	var res int
	for _, ev := range track {
		if ev.Message.Is(gomidi.NoteOnMsg) || ev.Message.Is(gomidi.NoteOffMsg) {
			res += 1
		}
	}
	return res
}

func TestExcerpt(t *testing.T) {
	mf := exportFixture(t)
	ex := Excerpt(mf, 0, 2)

	assert := assert.New(t)
	assert.Equal(mf.TimeFormat, ex.TimeFormat)
	require.Len(t, ex.Tracks, 3)
	assert.Equal(0, countNotes(ex.Tracks[0]))
	assert.Equal(2, countNotes(ex.Tracks[1]))
	assert.Equal(2, countNotes(ex.Tracks[2]))

	// the last measure only holds a rest
	late := Excerpt(mf, 2*4*960+1, 0)
	assert.Equal(0, countNotes(late.Tracks[1]))
}

func TestReadMidiRejectsGarbage(t *testing.T) {
	_, err := ReadMidi(strings.NewReader("definitely not midi"))
	assert.Error(t, err)

	_, err = ReadMidiFile("does/not/exist.mid")
	assert.Error(t, err)
}

const pickupDoc = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise>
  <part-list><score-part id="P1"><part-name>Lead</part-name></score-part></part-list>
  <part id="P1">
    <measure number="0" implicit="yes">
      <attributes><divisions>1</divisions><time><beats>4</beats><beat-type>4</beat-type></time></attributes>
      <note>
        <pitch><step>F</step><alter>1</alter><octave>5</octave></pitch>
        <duration>1</duration><type>quarter</type><accidental>sharp</accidental>
      </note>
    </measure>
    <measure number="1">
      <note>
        <pitch><step>F</step><alter>1</alter><octave>5</octave></pitch>
        <duration>4</duration><type>whole</type>
      </note>
    </measure>
  </part>
</score-partwise>`

type onset struct {
	tick uint64
	key  uint8
}

func noteOnsets(mf *smf.SMF) []onset {
	var res []onset
	for _, track := range mf.Tracks {
		var absTicks uint64
		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				res = append(res, onset{tick: absTicks, key: key})
			}
		}
	}
	return res
}

func TestExportUsesSoundingPitchAndPickupLength(t *testing.T) {
	doc, err := mxml.Decode(strings.NewReader(pickupDoc))
	require.NoError(t, err)
	s, err := score.Render(doc, score.DefaultOptions())
	require.NoError(t, err)

	// the second F# is drawn without its sharp
	second := s.Parts[0].Measures[1].Voices[0].Voice.Tickables[0].(*vex.StaveNote)
	assert.Equal(t, []string{"f/5"}, second.Keys)

	var buf bytes.Buffer
	require.NoError(t, Export(s, &buf, DefaultExportOptions()))
	mf, err := ReadMidi(&buf)
	require.NoError(t, err)

	assert.Equal(t, []onset{{tick: 0, key: 78}, {tick: 960, key: 78}}, noteOnsets(mf))
}

func TestExportFallsBackToKeys(t *testing.T) {
	n, err := vex.NewStaveNote(vex.StaveNoteStruct{Keys: []string{"c#/4"}, Duration: "q"})
	require.NoError(t, err)
	nums, err := sounding(n)
	require.NoError(t, err)
	assert.Equal(t, []uint8{61}, nums)
}

func TestExcerptKeepsAbsoluteTicks(t *testing.T) {
	ex := Excerpt(exportFixture(t), 4*960, 1)

	// measure 2 opens with E5 on the upper staff
	got := noteOnsets(&smf.SMF{Tracks: ex.Tracks[1:2]})
	assert.Equal(t, []onset{{tick: 4 * 960, key: 76}}, got)
}
