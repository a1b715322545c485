package midi

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidi parses an SMF. The reader panics on some truncated files
// (https://github.com/gomidi/midi/issues/20), which is turned into an error.
func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	defer func() {
		if rec, ok := recover().(string); ok {
			s, e = nil, errors.New(rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

func ReadMidiFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return ReadMidi(bytes.NewReader(dat))
}

// Excerpt copies mf keeping only note on/off events from fromTicks on, at
// most maxNotes of them per track (0 keeps all). Other events are kept.
// Kept events stay at their original absolute ticks.
func Excerpt(mf *smf.SMF, fromTicks uint64, maxNotes int) *smf.SMF {
	res := smf.SMF{TimeFormat: mf.TimeFormat}
	for _, track := range mf.Tracks {
		var out smf.Track
		var absTicks, lastKept uint64
		var numNotes int
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			isNote := evt.Message.Is(gomidi.NoteOnMsg) || evt.Message.Is(gomidi.NoteOffMsg)
			if isNote && absTicks < fromTicks {
				continue
			}
			if evt.Message.Is(smf.MetaEndOfTrackMsg) {
				break
			}
			evt.Delta = uint32(absTicks - lastKept)
			lastKept = absTicks
			out = append(out, evt)
			if isNote {
				numNotes += 1
				if maxNotes > 0 && numNotes >= maxNotes {
					break
				}
			}
		}
		out.Close(0)
		res.Tracks = append(res.Tracks, out)
	}
	return &res
}
