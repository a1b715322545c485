package score

import (
	"fmt"

	"github.com/jsphweid/vexvoice/chord"
	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/mxml"
	"github.com/jsphweid/vexvoice/util"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/jsphweid/vexvoice/voice"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	StaveWidth   float64
	StaveSpacing float64
}

func DefaultOptions() Options {
	return Options{
		StaveWidth:   constants.DefaultStaveWidth,
		StaveSpacing: constants.DefaultStaveSpacing,
	}
}

type Measure struct {
	Number    string
	Divisions int
	Time      model.TimeSignature
	Staves    []*vex.Stave
	Voices    []vex.VoiceBinding
	Groups    []voice.StaffGroup

	// problems that cost the measure a note or a ghost rest
	Warnings []string
}

type Part struct {
	Id       string
	Name     string
	Measures []Measure
}

type Score struct {
	Title string
	Parts []Part
}

type measureReader struct {
	attrs    *Attributes
	acc      *voice.Accumulator
	pending  []model.NoteRecord
	maxStaff int
	warnings []string
	fields   log.Fields
}

func (r *measureReader) warn(msg string, err error) {
	log.WithFields(r.fields).Warn(msg, ": ", err)
	r.warnings = append(r.warnings, fmt.Sprintf("%v: %v", msg, err))
}

// flush turns the collected chord into one stave note. A note that cannot be
// built is dropped; the accumulator is left untouched for the next one.
func (r *measureReader) flush() {
	if len(r.pending) == 0 {
		return
	}
	notes := r.pending
	r.pending = nil

	base := notes[0]
	staff := base.StaffOrDefault()
	r.maxStaff = util.Max(r.maxStaff, staff)
	staveNote, err := chord.CreateStaveNote(notes, r.attrs.Clef(staff), r.attrs.Divisions())
	if err != nil {
		r.warn("Skipping note", err)
		return
	}
	if err := r.acc.AddStaveNote(staveNote, base); err != nil {
		r.warn("Skipping note", err)
	}
}

func (r *measureReader) read(events []model.Event) {
	for _, e := range events {
		switch e.Kind {
		case model.AttributesEvent:
			r.flush()
			r.attrs.Update(*e.Attributes)
		case model.NoteEvent:
			if e.Note.Chord && len(r.pending) > 0 {
				r.pending = append(r.pending, *e.Note)
				continue
			}
			r.flush()
			r.pending = []model.NoteRecord{*e.Note}
		case model.BackupEvent:
			r.flush()
			if err := r.acc.AddBackup(e.Duration); err != nil {
				r.warn("Voice is missing its leading rest", err)
			}
		case model.ForwardEvent:
			r.flush()
			if err := r.acc.AddForward(e.Duration); err != nil {
				r.warn("Voice is missing a forward rest", err)
			}
		}
	}
	r.flush()
}

func makeStaves(count int, measureIndex int, firstStaff int, opts Options) []*vex.Stave {
	var res []*vex.Stave
	for i := 0; i < count; i++ {
		x := float64(measureIndex) * opts.StaveWidth
		y := float64(firstStaff+i) * opts.StaveSpacing
		res = append(res, vex.NewStave(i, x, y, opts.StaveWidth))
	}
	return res
}

func renderPart(p mxml.Part, name string, firstStaff int, opts Options) (Part, int, error) {
	res := Part{Id: p.Id, Name: name}
	attrs := NewAttributes()
	staffCount := 1

	for i, m := range p.Measures {
		events, err := m.Events()
		if err != nil {
			return res, staffCount, errors.Wrapf(err, "part %v measure %v", p.Id, m.Number)
		}

		r := measureReader{
			attrs:  attrs,
			acc:    voice.New(attrs),
			fields: log.Fields{"part": p.Id, "measure": m.Number},
		}
		r.read(events)

		staffCount = util.Max(attrs.Staves(), r.maxStaff)
		measure := Measure{
			Number:    m.Number,
			Divisions: attrs.Divisions(),
			Time:      attrs.TimeSignature(),
			Staves:    makeStaves(staffCount, i, firstStaff, opts),
			Warnings:  r.warnings,
		}

		voices, err := r.acc.GetVoices(measure.Staves)
		if err != nil && !errors.Is(err, voice.ErrEmptyStream) {
			return res, staffCount, errors.Wrapf(err, "part %v measure %v", p.Id, m.Number)
		}
		measure.Voices = voices
		measure.Groups = r.acc.StaffGroups()
		res.Measures = append(res.Measures, measure)
	}

	return res, staffCount, nil
}

// Render reads every part of doc measure by measure. Each measure gets its
// own accumulator and staves, stacked part after part.
func Render(doc *mxml.Document, opts Options) (*Score, error) {
	res := Score{Title: doc.Title()}
	firstStaff := 0
	for _, p := range doc.Parts {
		part, staffCount, err := renderPart(p, doc.PartName(p.Id), firstStaff, opts)
		if err != nil {
			return nil, err
		}
		res.Parts = append(res.Parts, part)
		firstStaff += staffCount
	}
	return &res, nil
}
