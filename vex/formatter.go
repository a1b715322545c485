package vex

import (
	"github.com/jsphweid/vexvoice/util"
	"github.com/pkg/errors"
)

var (
	ErrIncompleteVoice  = errors.New("voice does not have enough ticks")
	ErrMixedResolutions = errors.New("voices must share a resolution")
)

type Formatter struct {
	joined []*Voice
}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) JoinVoices(voices []*Voice) error {
	for _, v := range voices {
		if v.Time.Resolution != voices[0].Time.Resolution {
			return ErrMixedResolutions
		}
	}
	f.joined = voices
	return nil
}

// FormatToStave spreads every tickable across the stave in proportion to its
// tick offset, so tickables starting at the same tick in different voices get
// the same x.
func (f *Formatter) FormatToStave(voices []*Voice, stave *Stave) error {
	if len(voices) == 0 {
		return nil
	}
	total := 0
	for _, v := range voices {
		if !v.IsComplete() {
			return errors.Wrapf(ErrIncompleteVoice, "voice %s", v.Id)
		}
		total = util.Max(total, util.Max(v.TotalTicks(), v.TicksUsed()))
	}
	width := stave.Width - (stave.NoteStartX - stave.X)
	for _, v := range voices {
		offset := 0
		for _, t := range v.Tickables {
			x := stave.NoteStartX
			if total > 0 {
				x += width * float64(offset) / float64(total)
			}
			t.SetX(x)
			offset += t.Ticks()
		}
	}
	return nil
}
