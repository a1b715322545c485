package model

type TickableSummary struct {
	Duration    string         `json:"duration"`
	Keys        []string       `json:"keys,omitempty"`
	Accidentals map[int]string `json:"accidentals,omitempty"`
	Ghost       bool           `json:"ghost,omitempty"`
	Ticks       int            `json:"ticks"`
	X           float64        `json:"x"`
}

type VoiceSummary struct {
	Id        string            `json:"id"`
	Staff     int               `json:"staff"`
	Tickables []TickableSummary `json:"tickables"`
}

type MeasureSummary struct {
	Number   string         `json:"number"`
	Time     TimeSignature  `json:"time"`
	Voices   []VoiceSummary `json:"voices"`
	Warnings []string       `json:"warnings,omitempty"`
}

type PartSummary struct {
	Id       string           `json:"id"`
	Name     string           `json:"name,omitempty"`
	Measures []MeasureSummary `json:"measures"`
}

type ScoreSummary struct {
	Title string        `json:"title,omitempty"`
	Parts []PartSummary `json:"parts"`
}
