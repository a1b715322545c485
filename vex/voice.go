package vex

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type VoiceMode uint8

const (
	StrictMode VoiceMode = iota
	SoftMode
	FullMode
)

var ErrVoiceOverflow = errors.New("too many ticks in voice")

type VoiceTime struct {
	NumBeats   int
	BeatValue  int
	Resolution int
}

type Voice struct {
	Id        string
	Time      VoiceTime
	Mode      VoiceMode
	Tickables []Tickable
}

func NewVoice(t VoiceTime) *Voice {
	if t.Resolution == 0 {
		t.Resolution = Resolution
	}
	return &Voice{Id: uuid.New().String(), Time: t}
}

func (v *Voice) SetMode(mode VoiceMode) *Voice {
	v.Mode = mode
	return v
}

// AddTickables fails in strict and full mode when the voice would run past
// its measure length.
func (v *Voice) AddTickables(tickables []Tickable) (*Voice, error) {
	used := v.TicksUsed()
	for _, t := range tickables {
		used += t.Ticks()
	}
	if v.Mode != SoftMode && used > v.TotalTicks() {
		return v, errors.Wrapf(ErrVoiceOverflow, "%d > %d", used, v.TotalTicks())
	}
	v.Tickables = append(v.Tickables, tickables...)
	return v, nil
}

func (v *Voice) TotalTicks() int {
	if v.Time.BeatValue == 0 {
		return 0
	}
	return v.Time.NumBeats * (v.Time.Resolution / v.Time.BeatValue)
}

func (v *Voice) TicksUsed() int {
	var total int
	for _, t := range v.Tickables {
		total += t.Ticks()
	}
	return total
}

func (v *Voice) IsComplete() bool {
	if v.Mode == SoftMode {
		return true
	}
	return v.TicksUsed() == v.TotalTicks()
}

type Stave struct {
	Index      int
	X          float64
	Y          float64
	Width      float64
	NoteStartX float64
}

const staveNoteStartPadding = 10

func NewStave(index int, x, y, width float64) *Stave {
	return &Stave{
		Index:      index,
		X:          x,
		Y:          y,
		Width:      width,
		NoteStartX: x + staveNoteStartPadding,
	}
}

type VoiceBinding struct {
	Voice *Voice
	Stave *Stave
}
