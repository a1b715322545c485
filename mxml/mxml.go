package mxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Document is a partwise MusicXML score.
type Document struct {
	XMLName       xml.Name    `xml:"score-partwise"`
	WorkTitle     string      `xml:"work>work-title"`
	MovementTitle string      `xml:"movement-title"`
	PartList      []ScorePart `xml:"part-list>score-part"`
	Parts         []Part      `xml:"part"`
}

type ScorePart struct {
	Id   string `xml:"id,attr"`
	Name string `xml:"part-name"`
}

type Part struct {
	Id       string    `xml:"id,attr"`
	Measures []Measure `xml:"measure"`
}

// Measure keeps its children in document order. Each item is one of
// *Attributes, *Note, *Backup or *Forward.
type Measure struct {
	Number string
	Items  []interface{}
}

type Attributes struct {
	Divisions int    `xml:"divisions"`
	Time      *Time  `xml:"time"`
	Staves    int    `xml:"staves"`
	Clefs     []Clef `xml:"clef"`
}

type Time struct {
	Beats    string `xml:"beats"`
	BeatType int    `xml:"beat-type"`
}

type Clef struct {
	Number int    `xml:"number,attr"`
	Sign   string `xml:"sign"`
	Line   int    `xml:"line"`
}

type Note struct {
	Grace      *struct{}  `xml:"grace"`
	Chord      *struct{}  `xml:"chord"`
	Pitch      *Pitch     `xml:"pitch"`
	Rest       *struct{}  `xml:"rest"`
	Duration   int        `xml:"duration"`
	Voice      string     `xml:"voice"`
	Type       string     `xml:"type"`
	Dots       []struct{} `xml:"dot"`
	Accidental string     `xml:"accidental"`
	Stem       string     `xml:"stem"`
	Staff      int        `xml:"staff"`
}

type Pitch struct {
	Step   string  `xml:"step"`
	Alter  float64 `xml:"alter"` // xs:decimal, quarter tones are legal
	Octave int     `xml:"octave"`
}

type Backup struct {
	Duration int `xml:"duration"`
}

type Forward struct {
	Duration int    `xml:"duration"`
	Voice    string `xml:"voice"`
	Staff    int    `xml:"staff"`
}

func (m *Measure) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "number" {
			m.Number = attr.Value
		}
	}

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			var item interface{}
			switch t.Name.Local {
			case "attributes":
				item = &Attributes{}
			case "note":
				item = &Note{}
			case "backup":
				item = &Backup{}
			case "forward":
				item = &Forward{}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := d.DecodeElement(item, &t); err != nil {
				return errors.Wrapf(err, "measure %v: %v", m.Number, t.Name.Local)
			}
			m.Items = append(m.Items, item)
		}
	}
}

func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "Error parsing MusicXML")
	}
	return &doc, nil
}

func (d *Document) Title() string {
	if d.WorkTitle != "" {
		return d.WorkTitle
	}
	return d.MovementTitle
}

func (d *Document) PartName(id string) string {
	for _, p := range d.PartList {
		if p.Id == id {
			return p.Name
		}
	}
	return ""
}

// BeatCount handles compound signatures like "3+2".
func (t Time) BeatCount() (int, error) {
	total := 0
	for _, s := range strings.Split(t.Beats, "+") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, errors.Wrapf(err, "beats %q", t.Beats)
		}
		total += n
	}
	return total, nil
}

func (c Clef) Name() string {
	switch c.Sign {
	case "G":
		if c.Line == 1 {
			return "french"
		}
		return "treble"
	case "F":
		if c.Line == 3 {
			return "baritone-f"
		}
		return "bass"
	case "C":
		switch c.Line {
		case 1:
			return "soprano"
		case 2:
			return "mezzo-soprano"
		case 4:
			return "tenor"
		}
		return "alto"
	case "percussion":
		return "percussion"
	}
	return "treble"
}
