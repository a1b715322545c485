package midi

import (
	"io"
	"sort"

	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/score"
	"github.com/jsphweid/vexvoice/util"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type ExportOptions struct {
	BPM      float64
	Ticks4th uint16
	Velocity uint8
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{BPM: constants.DefaultBPM, Ticks4th: 960, Velocity: 100}
}

type trackKey struct {
	part  int
	staff int
}

type noteEvent struct {
	tick uint32
	on   bool
	key  uint8
}

type exporter struct {
	opts   ExportOptions
	tracks map[trackKey][]noteEvent
}

func (e *exporter) toMidiTicks(vexTicks int) uint32 {
	return uint32(vexTicks * int(e.opts.Ticks4th) / (vex.Resolution / 4))
}

func (e *exporter) addVoice(part int, b vex.VoiceBinding, start uint32) error {
	k := trackKey{part: part, staff: b.Stave.Index}
	offset := start
	for _, t := range b.Voice.Tickables {
		length := e.toMidiTicks(t.Ticks())
		if n, ok := t.(*vex.StaveNote); ok && !n.IsRest() {
			nums, err := sounding(n)
			if err != nil {
				return err
			}
			for _, num := range nums {
				e.tracks[k] = append(e.tracks[k],
					noteEvent{tick: offset, on: true, key: num},
					noteEvent{tick: offset + length, on: false, key: num})
			}
		}
		offset += length
	}
	return nil
}

// sounding prefers the pitches the note was built from. Keys only spell the
// drawn accidentals, so they are the fallback for notes built by hand.
func sounding(n *vex.StaveNote) ([]uint8, error) {
	var res []uint8
	if len(n.Pitches) == len(n.Keys) {
		for _, p := range n.Pitches {
			if p < 0 || p > 127 {
				return nil, errors.Wrapf(ErrBadKey, "pitch %d is out of range", p)
			}
			res = append(res, uint8(p))
		}
		return res, nil
	}
	for _, key := range n.Keys {
		num, err := KeyToMIDI(key)
		if err != nil {
			return nil, err
		}
		res = append(res, num)
	}
	return res, nil
}

// measureLength is the time signature's length, or the longest voice when
// that is shorter, as in a pickup measure.
func (e *exporter) measureLength(m score.Measure) uint32 {
	full := uint32(m.Time.Beats * int(e.opts.Ticks4th) * 4 / m.Time.BeatType)
	if len(m.Voices) == 0 {
		return full
	}
	var longest int
	for _, b := range m.Voices {
		longest = util.Max(longest, b.Voice.TicksUsed())
	}
	return util.Min(full, e.toMidiTicks(longest))
}

func (e *exporter) write(key trackKey) smf.Track {
	events := e.tracks[key]
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})

	channel := uint8(key.part % 16)
	var track smf.Track
	var last uint32
	for _, ev := range events {
		delta := ev.tick - last
		last = ev.tick
		if ev.on {
			track.Add(delta, gomidi.NoteOn(channel, ev.key, e.opts.Velocity))
		} else {
			track.Add(delta, gomidi.NoteOff(channel, ev.key))
		}
	}
	track.Close(0)
	return track
}

// Export writes s as a format 1 SMF. Track 0 holds meter and tempo, followed
// by one track per part and staff. Ghost notes and rests only move time on.
func Export(s *score.Score, w io.Writer, opts ExportOptions) error {
	e := exporter{opts: opts, tracks: make(map[trackKey][]noteEvent)}

	var conductor smf.Track
	meterSet := false
	for p, part := range s.Parts {
		var start uint32
		for _, m := range part.Measures {
			if !meterSet {
				conductor.Add(0, smf.MetaMeter(uint8(m.Time.Beats), uint8(m.Time.BeatType)))
				meterSet = true
			}
			for _, b := range m.Voices {
				if err := e.addVoice(p, b, start); err != nil {
					return errors.Wrapf(err, "part %v measure %v", part.Id, m.Number)
				}
			}
			start += e.measureLength(m)
		}
	}
	conductor.Add(0, smf.MetaTempo(opts.BPM))
	conductor.Close(0)

	keys := make([]trackKey, 0, len(e.tracks))
	for k := range e.tracks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].part != keys[j].part {
			return keys[i].part < keys[j].part
		}
		return keys[i].staff < keys[j].staff
	})

	mf := smf.New()
	mf.TimeFormat = smf.MetricTicks(opts.Ticks4th)
	if err := mf.Add(conductor); err != nil {
		return err
	}
	for _, k := range keys {
		if err := mf.Add(e.write(k)); err != nil {
			return err
		}
	}
	_, err := mf.WriteTo(w)
	return err
}
