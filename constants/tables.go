package constants

// NoteVexTypes is ordered from shortest to longest note value. Each entry is
// twice the length of the previous one.
var NoteVexTypes = []string{"128", "64", "32", "16", "8", "q", "h", "w", "1/2"}

const NoteVexQuarterIndex = 5

// NoteTypeDict maps MusicXML <type> names to vex duration codes.
var NoteTypeDict = map[string]string{
	"128th":   "128",
	"64th":    "64",
	"32nd":    "32",
	"16th":    "16",
	"eighth":  "8",
	"quarter": "q",
	"half":    "h",
	"whole":   "w",
	"breve":   "1/2",
}

// AccidentalDict maps MusicXML <accidental> names to vex accidental codes.
var AccidentalDict = map[string]string{
	"sharp":        "#",
	"double-sharp": "##",
	"sharp-sharp":  "##",
	"flat":         "b",
	"flat-flat":    "bb",
	"natural":      "n",
}

const DefaultRestPitch = "b/4"

// StepSemitones is the distance of each natural step above C.
var StepSemitones = map[string]int{
	"C": 0,
	"D": 2,
	"E": 4,
	"F": 5,
	"G": 7,
	"A": 9,
	"B": 11,
}
