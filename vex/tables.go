package vex

import (
	"strings"

	"github.com/pkg/errors"
)

// Resolution is the number of ticks in a whole note.
const Resolution = 16384

var ErrBadDuration = errors.New("invalid duration code")

var durationTicks = map[string]int{
	"1/2": Resolution * 2,
	"w":   Resolution,
	"h":   Resolution / 2,
	"q":   Resolution / 4,
	"8":   Resolution / 8,
	"16":  Resolution / 16,
	"32":  Resolution / 32,
	"64":  Resolution / 64,
	"128": Resolution / 128,
}

type Duration struct {
	Base string
	Dots int
	Rest bool
}

// ParseDuration accepts codes like "q", "8d", "hr" and "qrdd".
func ParseDuration(code string) (Duration, error) {
	var d Duration
	rest := code
	for len(rest) > 0 {
		last := rest[len(rest)-1]
		if last == 'd' {
			d.Dots++
		} else if last == 'r' {
			d.Rest = true
		} else {
			break
		}
		rest = rest[:len(rest)-1]
	}
	if _, ok := durationTicks[rest]; !ok {
		return d, errors.Wrapf(ErrBadDuration, "%q", code)
	}
	d.Base = rest
	return d, nil
}

func (d Duration) Ticks() int {
	ticks := durationTicks[d.Base]
	total := ticks
	for i := 0; i < d.Dots; i++ {
		ticks /= 2
		total += ticks
	}
	return total
}

func (d Duration) String() string {
	res := d.Base
	if d.Rest {
		res += "r"
	}
	return res + strings.Repeat("d", d.Dots)
}
