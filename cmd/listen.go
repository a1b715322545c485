package cmd

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/vexvoice/chord"
	"github.com/jsphweid/vexvoice/constants"
	"github.com/jsphweid/vexvoice/midi"
	"github.com/jsphweid/vexvoice/model"
	"github.com/jsphweid/vexvoice/score"
	"github.com/jsphweid/vexvoice/util"
	"github.com/jsphweid/vexvoice/vex"
	"github.com/jsphweid/vexvoice/voice"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenPort      int
	listenBPM       float64
	listenDivisions int
	listenWindow    time.Duration
	listenFor       time.Duration
)

func init() {
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "MIDI input port number")
	listenCmd.Flags().Float64Var(&listenBPM, "bpm", constants.DefaultBPM, "tempo used to measure durations")
	listenCmd.Flags().IntVar(&listenDivisions, "divisions", 4, "divisions per quarter note")
	listenCmd.Flags().DurationVar(&listenWindow, "chord-window", 40*time.Millisecond, "notes starting within this window form a chord")
	listenCmd.Flags().DurationVar(&listenFor, "for", 0, "stop after this long (0 = until interrupted)")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Transcribes live MIDI input",
	Long:  `Listens to a MIDI input port and prints what was played as voices.`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

type heldChord struct {
	start time.Time
	end   time.Time
	keys  []uint8
}

// transcriber collects live notes into chords. Driver callbacks and the
// debounce timer call into it from different goroutines.
type transcriber struct {
	mu        sync.Mutex
	pending   map[uint8]time.Time
	released  map[uint8]time.Time
	chords    []heldChord
	debounced func(f func())
}

func newTranscriber(window time.Duration) *transcriber {
	return &transcriber{
		pending:   make(map[uint8]time.Time),
		released:  make(map[uint8]time.Time),
		debounced: debounce.New(window),
	}
}

func (t *transcriber) noteOn(key uint8, at time.Time) {
	t.mu.Lock()
	t.pending[key] = at
	t.mu.Unlock()
	t.debounced(t.flush)
}

func (t *transcriber) noteOff(key uint8, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.released[key] = at
	for i := len(t.chords) - 1; i >= 0; i-- {
		for _, k := range t.chords[i].keys {
			if k == key {
				if t.chords[i].end.Before(at) {
					t.chords[i].end = at
				}
				return
			}
		}
	}
}

func (t *transcriber) flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.pending) == 0 {
		return
	}
	c := heldChord{keys: util.GetKeys(t.pending)}
	for key, at := range t.pending {
		if c.start.IsZero() || at.Before(c.start) {
			c.start = at
		}
		if rel, ok := t.released[key]; ok && rel.After(at) && rel.After(c.end) {
			c.end = rel
		}
	}
	t.chords = append(t.chords, c)
	t.pending = make(map[uint8]time.Time)
}

func toDivisions(d time.Duration, bpm float64, divisions int) int {
	quarter := time.Duration(float64(time.Minute) / bpm)
	return int(math.Round(float64(d) / float64(quarter) * float64(divisions)))
}

// records turns the held chords into note records. Silence between a chord's
// last release and the next chord becomes a rest.
func (t *transcriber) records(stop time.Time, bpm float64, divisions int) []model.NoteRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	var res []model.NoteRecord
	for i, c := range t.chords {
		next := stop
		if i+1 < len(t.chords) {
			next = t.chords[i+1].start
		}
		end := c.end
		if end.IsZero() || end.After(next) {
			end = next
		}

		d := toDivisions(end.Sub(c.start), bpm, divisions)
		if d <= 0 {
			continue
		}
		for j, key := range c.keys {
			p := midi.PitchFromMIDI(key)
			res = append(res, model.NoteRecord{Duration: d, Pitch: &p, Chord: j > 0, Staff: 1})
		}

		if gap := toDivisions(next.Sub(end), bpm, divisions); gap > 0 {
			res = append(res, model.NoteRecord{Duration: gap, Rest: true, Staff: 1})
		}
	}
	return res
}

func transcribe(records []model.NoteRecord, divisions int) (*score.Measure, error) {
	attrs := score.NewAttributes()
	attrs.Update(model.Attributes{Divisions: divisions})
	acc := voice.New(attrs)
	for _, g := range chord.Group(records) {
		n, err := chord.CreateStaveNote(g, attrs.Clef(1), divisions)
		if err != nil {
			log.Warn("Skipping note: ", err)
			continue
		}
		if err := acc.AddStaveNote(n, g[0]); err != nil {
			return nil, err
		}
	}

	m := score.Measure{
		Number:    "1",
		Divisions: divisions,
		Time:      attrs.TimeSignature(),
		Staves:    []*vex.Stave{vex.NewStave(0, 0, 0, constants.DefaultStaveWidth)},
	}
	voices, err := acc.GetVoices(m.Staves)
	if err != nil {
		return nil, err
	}
	m.Voices = voices
	m.Groups = acc.StaffGroups()
	return &m, nil
}

func listen() {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(listenPort)
	if err != nil {
		panic("Could not open MIDI input: " + err.Error())
	}

	t := newTranscriber(listenWindow)
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		now := time.Now()
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			t.noteOn(key, now)
		case msg.GetNoteEnd(&ch, &key):
			t.noteOff(key, now)
		default:
			// ignore
		}
	})
	if err != nil {
		panic("Could not listen: " + err.Error())
	}

	log.WithField("port", in.String()).Info("Listening, interrupt to stop")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	if listenFor > 0 {
		select {
		case <-interrupt:
		case <-time.After(listenFor):
		}
	} else {
		<-interrupt
	}
	stop()
	end := time.Now()
	t.flush()

	m, err := transcribe(t.records(end, listenBPM, listenDivisions), listenDivisions)
	if err != nil {
		panic(err)
	}
	summary := m.Summary()
	for _, v := range summary.Voices {
		for _, tk := range v.Tickables {
			fmt.Printf("%v %v\n", tk.Duration, tk.Keys)
		}
	}
}
