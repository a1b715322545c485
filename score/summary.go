package score

import (
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/vex"
)

func summarizeTickable(t vex.Tickable) model.TickableSummary {
	res := model.TickableSummary{
		Duration: t.Duration(),
		Ghost:    t.IsGhost(),
		Ticks:    t.Ticks(),
		X:        t.X(),
	}
	if n, ok := t.(*vex.StaveNote); ok {
		res.Keys = n.Keys
		if len(n.Accidentals) > 0 {
			res.Accidentals = n.Accidentals
		}
	}
	return res
}

func (m *Measure) Summary() model.MeasureSummary {
	res := model.MeasureSummary{
		Number:   m.Number,
		Time:     m.Time,
		Voices:   []model.VoiceSummary{},
		Warnings: m.Warnings,
	}
	for _, b := range m.Voices {
		v := model.VoiceSummary{Id: b.Voice.Id, Staff: b.Stave.Index + 1}
		for _, t := range b.Voice.Tickables {
			v.Tickables = append(v.Tickables, summarizeTickable(t))
		}
		res.Voices = append(res.Voices, v)
	}
	return res
}

func (s *Score) Summary() model.ScoreSummary {
	res := model.ScoreSummary{Title: s.Title}
	for _, p := range s.Parts {
		part := model.PartSummary{Id: p.Id, Name: p.Name}
		for i := range p.Measures {
			part.Measures = append(part.Measures, p.Measures[i].Summary())
		}
		res.Parts = append(res.Parts, part)
	}
	return res
}

type Stats struct {
	Measures    int
	Voices      int
	StaffGroups int
	Notes       int
	Rests       int
	GhostRests  int
	Warnings    int
}

func (s *Score) Stats() Stats {
	var res Stats
	for _, p := range s.Parts {
		for _, m := range p.Measures {
			res.Measures++
			res.Voices += len(m.Voices)
			res.StaffGroups += len(m.Groups)
			res.Warnings += len(m.Warnings)
			for _, b := range m.Voices {
				for _, t := range b.Voice.Tickables {
					switch n := t.(type) {
					case *vex.GhostNote:
						res.GhostRests++
					case *vex.StaveNote:
						if n.IsRest() {
							res.Rests++
						} else {
							res.Notes++
						}
					}
				}
			}
		}
	}
	return res
}
