package voice

import (
	"github.com/jsphweid/vexvoice/duration"
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyStream  = errors.New("no notes were added before GetVoices")
	ErrFinalized    = errors.New("accumulator already produced its voices")
	ErrUnknownStaff = errors.New("no stave for staff")
)

type AttributesProvider interface {
	Divisions() int
	TimeSignature() model.TimeSignature
}

// Segment is one voice's worth of tickables. A new one starts at every
// backup.
type Segment struct {
	Staff     int
	Voice     string
	Tickables []vex.Tickable

	staffKnown bool
}

// Accumulator turns a note/backup/forward stream into voices. It is used for
// a single pass and is not safe for concurrent use.
type Accumulator struct {
	attrs     AttributesProvider
	cursor    int
	segments  []*Segment
	groups    []StaffGroup
	sawNote   bool
	finalized bool
}

func New(attrs AttributesProvider) *Accumulator {
	return &Accumulator{
		attrs:    attrs,
		segments: []*Segment{{}},
	}
}

func (a *Accumulator) current() *Segment {
	return a.segments[len(a.segments)-1]
}

func (a *Accumulator) AddStaveNote(t vex.Tickable, note model.NoteRecord) error {
	if a.finalized {
		return ErrFinalized
	}
	seg := a.current()
	if !seg.staffKnown {
		seg.Staff = note.StaffOrDefault()
		seg.Voice = note.Voice
		seg.staffKnown = true
	}
	a.cursor += note.Duration
	a.sawNote = true
	seg.Tickables = append(seg.Tickables, t)
	return nil
}

// AddBackup starts a new voice. If the backup does not reach the start of the
// measure the new voice is padded with a ghost rest up to the cursor.
func (a *Accumulator) AddBackup(d int) error {
	if a.finalized {
		return ErrFinalized
	}
	a.cursor -= d
	seg := &Segment{}
	a.segments = append(a.segments, seg)
	if a.cursor <= 0 {
		return nil
	}

	ghost, err := a.ghost(a.cursor)
	if err != nil {
		log.WithFields(log.Fields{
			"cursor":  a.cursor,
			"segment": len(a.segments) - 1,
		}).Warn("Could not pad voice after backup: ", err)
		return err
	}
	seg.Tickables = append(seg.Tickables, ghost)
	return nil
}

func (a *Accumulator) AddForward(d int) error {
	if a.finalized {
		return ErrFinalized
	}
	a.cursor += d
	ghost, err := a.ghost(d)
	if err != nil {
		log.WithFields(log.Fields{
			"duration": d,
			"segment":  len(a.segments) - 1,
		}).Warn("Could not insert forward: ", err)
		return err
	}
	seg := a.current()
	seg.Tickables = append(seg.Tickables, ghost)
	return nil
}

func (a *Accumulator) ghost(d int) (*vex.GhostNote, error) {
	noteType, err := duration.Classify(d, a.attrs.Divisions(), false)
	if err != nil {
		return nil, err
	}
	return vex.NewGhostNote(noteType)
}

func (a *Accumulator) Cursor() int {
	return a.cursor
}

// Segments returns the segments with unresolved staves filled in from the
// preceding segment.
func (a *Accumulator) Segments() []Segment {
	res := make([]Segment, 0, len(a.segments))
	prev := 1
	for _, seg := range a.segments {
		s := *seg
		if !s.staffKnown {
			s.Staff = prev
		}
		prev = s.Staff
		res = append(res, s)
	}
	return res
}

// StaffGroup is a run of consecutive voices on the same staff. They are
// joined and formatted together.
type StaffGroup struct {
	Staff  int
	Stave  *vex.Stave
	Voices []*vex.Voice
}

func (g *StaffGroup) format() error {
	formatter := vex.NewFormatter()
	if err := formatter.JoinVoices(g.Voices); err != nil {
		return err
	}
	return formatter.FormatToStave(g.Voices, g.Stave)
}

// GetVoices builds one voice per segment, formats each run of consecutive
// segments sharing a staff against that staff's stave and returns the
// voice/stave pairs in segment order. staves[i] belongs to staff i+1.
func (a *Accumulator) GetVoices(staves []*vex.Stave) ([]vex.VoiceBinding, error) {
	if a.finalized {
		return nil, ErrFinalized
	}
	a.finalized = true

	// ghost rests alone do not make a voice
	if !a.sawNote {
		return nil, ErrEmptyStream
	}

	segments := a.Segments()

	time := a.attrs.TimeSignature()
	var res []vex.VoiceBinding
	var groups []*StaffGroup
	for _, seg := range segments {
		if seg.Staff < 1 || seg.Staff > len(staves) {
			return nil, errors.Wrapf(ErrUnknownStaff, "staff %d of %d", seg.Staff, len(staves))
		}
		stave := staves[seg.Staff-1]

		v := vex.NewVoice(vex.VoiceTime{
			NumBeats:   time.Beats,
			BeatValue:  time.BeatType,
			Resolution: vex.Resolution,
		}).SetMode(vex.SoftMode)
		if _, err := v.AddTickables(seg.Tickables); err != nil {
			return nil, err
		}
		res = append(res, vex.VoiceBinding{Voice: v, Stave: stave})

		if len(groups) == 0 || groups[len(groups)-1].Staff != seg.Staff {
			groups = append(groups, &StaffGroup{Staff: seg.Staff, Stave: stave})
		}
		last := groups[len(groups)-1]
		last.Voices = append(last.Voices, v)
	}

	for _, g := range groups {
		if err := g.format(); err != nil {
			return nil, errors.Wrapf(err, "formatting staff %d", g.Staff)
		}
		a.groups = append(a.groups, *g)
	}

	return res, nil
}

// StaffGroups returns the groups formatted by GetVoices.
func (a *Accumulator) StaffGroups() []StaffGroup {
	return a.groups
}
