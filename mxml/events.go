package mxml

import (
	"math"
	"strings"

	"github.com/jsphweid/vexvoice/model"
)

func (n *Note) Record() model.NoteRecord {
	r := model.NoteRecord{
		Duration: n.Duration,
		Voice:    n.Voice,
		Staff:    n.Staff,
		Rest:     n.Rest != nil,
		Type:     n.Type,
		Dots:     len(n.Dots),
		Stem:     strings.TrimSpace(n.Stem),
		Chord:    n.Chord != nil,
	}
	if n.Pitch != nil {
		r.Pitch = &model.Pitch{
			Step:       n.Pitch.Step,
			Octave:     n.Pitch.Octave,
			Alter:      int(math.Round(n.Pitch.Alter)),
			Accidental: strings.TrimSpace(n.Accidental),
		}
	}
	return r
}

func (a *Attributes) Model() (model.Attributes, error) {
	res := model.Attributes{
		Divisions: a.Divisions,
		Staves:    a.Staves,
	}
	if a.Time != nil {
		beats, err := a.Time.BeatCount()
		if err != nil {
			return res, err
		}
		res.Time = &model.TimeSignature{Beats: beats, BeatType: a.Time.BeatType}
	}
	if len(a.Clefs) > 0 {
		res.Clefs = make(map[int]string)
		for _, c := range a.Clefs {
			staff := c.Number
			if staff == 0 {
				staff = 1
			}
			res.Clefs[staff] = c.Name()
		}
	}
	return res, nil
}

// Events flattens a measure into the stream the voice accumulator consumes.
// Grace notes carry no duration and are dropped.
func (m *Measure) Events() ([]model.Event, error) {
	var res []model.Event
	for _, item := range m.Items {
		switch v := item.(type) {
		case *Attributes:
			attrs, err := v.Model()
			if err != nil {
				return nil, err
			}
			res = append(res, model.Event{Kind: model.AttributesEvent, Attributes: &attrs})
		case *Note:
			if v.Grace != nil {
				continue
			}
			r := v.Record()
			res = append(res, model.Event{Kind: model.NoteEvent, Note: &r, Duration: r.Duration})
		case *Backup:
			res = append(res, model.Event{Kind: model.BackupEvent, Duration: v.Duration})
		case *Forward:
			res = append(res, model.Event{Kind: model.ForwardEvent, Duration: v.Duration})
		}
	}
	return res, nil
}
