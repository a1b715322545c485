package duration

import (
	"math"

	"github.com/jsphweid/vexvoice/constants"
	"github.com/pkg/errors"
)

var (
	// ErrClassification means the duration is not a binary fraction of the
	// divisions within the range of known note types.
	ErrClassification = errors.New("no proper stave note type")

	// ErrInvalidDuration is returned for zero or negative input. Callers are
	// expected never to ask for it.
	ErrInvalidDuration = errors.New("duration and divisions must be positive")
)

type Classifier struct {
	MaxIterations int
	MaxDots       int
}

var Default = Classifier{MaxIterations: 20, MaxDots: 5}

func Classify(duration int, divisions int, withDots bool) (string, error) {
	return Default.Classify(duration, divisions, withDots)
}

func (c Classifier) Classify(duration int, divisions int, withDots bool) (string, error) {
	if duration <= 0 || divisions <= 0 {
		return "", errors.Wrapf(ErrInvalidDuration, "duration %d, divisions %d", duration, divisions)
	}

	d := float64(duration)
	div := float64(divisions)
	i := constants.NoteVexQuarterIndex
	found := false
	for count := 0; count < c.MaxIterations; count++ {
		num := math.Floor(d / div)
		if num == 1 {
			found = true
			break
		} else if num > 1 {
			div *= 2
			i++
		} else {
			div /= 2
			i--
		}
	}
	if !found {
		return "", errors.Wrapf(ErrClassification, "duration %d, divisions %d", duration, divisions)
	}
	if i < 0 || i >= len(constants.NoteVexTypes) {
		return "", errors.Wrapf(ErrClassification, "duration %d, divisions %d is out of range", duration, divisions)
	}

	noteType := constants.NoteVexTypes[i]
	if withDots {
		noteType += dots(d, div, c.MaxDots)
	}
	return noteType, nil
}

// each dot adds half of the previous value
func dots(d float64, div float64, max int) string {
	var res string
	for count := 0; count < max; count++ {
		d -= math.Floor(d/div) * div
		div /= 2
		if math.Floor(d/div) != 1 {
			break
		}
		res += "d"
	}
	return res
}
