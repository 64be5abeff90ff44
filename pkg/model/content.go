package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidDate     = goerr.New("invalid date, expected DD-MM-YYYY")
	ErrContentNotFound = goerr.New("content not found")
	ErrNoSections      = goerr.New("no sections extracted")
)

// RunID identifies one pipeline invocation, used for log correlation
type RunID string

// NewRunID generates a new unique RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

type Importance string

const (
	ImportanceAbsolute Importance = "absolutely_important"
	ImportanceHigh     Importance = "important"
	ImportanceModerate Importance = "moderately_important"
)

// Validate checks if the importance level is valid
func (i Importance) Validate() error {
	switch i {
	case ImportanceAbsolute, ImportanceHigh, ImportanceModerate:
		return nil
	default:
		return goerr.New("invalid importance level", goerr.V("importance", i))
	}
}

// Section is a topically coherent excerpt of the day's source text.
// Index is assigned by extraction order and is the sole identity used
// for provenance linkage; Title is descriptive only.
type Section struct {
	Index      int        `json:"index" firestore:"index"`
	Title      string     `json:"title" firestore:"title"`
	Content    []string   `json:"content" firestore:"content"`
	Importance Importance `json:"importance" firestore:"importance"`
}

// Text joins the section's bullet points into the text handed to the
// artifact generators.
func (s *Section) Text() string {
	text := ""
	for i, line := range s.Content {
		if i > 0 {
			text += "\n"
		}
		text += line
	}
	return text
}

type Card struct {
	Title      string   `json:"title" firestore:"title"`
	GSTags     string   `json:"gs_tags" firestore:"gs_tags"`
	Tags       []string `json:"tags" firestore:"tags"`
	Summary    string   `json:"summary" firestore:"summary"`
	CTAButtons string   `json:"cta_buttons" firestore:"cta_buttons"`

	SectionIndex int    `json:"section_index" firestore:"section_index"`
	SectionTitle string `json:"section_title" firestore:"section_title"`
}

type MindmapNode struct {
	Name     string         `json:"name" firestore:"name"`
	Children []*MindmapNode `json:"children,omitempty" firestore:"children,omitempty"`
}

// Mindmap is a hierarchical map of one section's topics. Mindmaps are
// aligned 1:1 with sections; a generation miss is stored as an empty
// placeholder so the alignment holds.
type Mindmap struct {
	Title string         `json:"title" firestore:"title"`
	Nodes []*MindmapNode `json:"nodes" firestore:"nodes"`

	SectionIndex int    `json:"section_index" firestore:"section_index"`
	SectionTitle string `json:"section_title" firestore:"section_title"`
}

type MindmapSet struct {
	Mindmaps []*Mindmap `json:"mindmaps" firestore:"mindmaps"`
}

type PrelimsQuestion struct {
	Question      string            `json:"question" firestore:"question"`
	Options       map[string]string `json:"options" firestore:"options"`
	CorrectAnswer string            `json:"correct_answer" firestore:"correct_answer"`
	Explanation   string            `json:"explanation" firestore:"explanation"`
	GSPaper       string            `json:"gs_paper" firestore:"gs_paper"`
	Year          string            `json:"year" firestore:"year"`

	SectionIndex int    `json:"section_index" firestore:"section_index"`
	SectionTitle string `json:"section_title" firestore:"section_title"`
}

type MainsQuestion struct {
	Question  string   `json:"question" firestore:"question"`
	Type      string   `json:"type" firestore:"type"`
	GSPaper   string   `json:"gs_paper" firestore:"gs_paper"`
	Year      string   `json:"year" firestore:"year"`
	KeyPoints []string `json:"key_points" firestore:"key_points"`

	SectionIndex int    `json:"section_index" firestore:"section_index"`
	SectionTitle string `json:"section_title" firestore:"section_title"`
}

type PYQSet struct {
	Prelims []*PrelimsQuestion `json:"prelims" firestore:"prelims"`
	Mains   []*MainsQuestion   `json:"mains" firestore:"mains"`
}

// DailyContent is the complete set of generated study material for one
// date, persisted as a single document keyed by Date.
type DailyContent struct {
	Date     DateKey    `json:"date" firestore:"date"`
	Sections []*Section `json:"sections" firestore:"sections"`
	Cards    []*Card    `json:"cards" firestore:"cards"`
	Mindmap  MindmapSet `json:"mindmap" firestore:"mindmap"`
	PYQ      PYQSet     `json:"pyq" firestore:"pyq"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// Validate checks the cross-entity provenance invariant: every card,
// mindmap and question must reference an existing section, and its
// denormalized title copy must match that section's title.
func (d *DailyContent) Validate() error {
	check := func(kind string, index int, title string) error {
		if index < 0 || index >= len(d.Sections) {
			return goerr.New("section_index out of range",
				goerr.V("kind", kind),
				goerr.V("section_index", index),
				goerr.V("sections", len(d.Sections)))
		}
		if title != d.Sections[index].Title {
			return goerr.New("section_title mismatch",
				goerr.V("kind", kind),
				goerr.V("section_index", index),
				goerr.V("section_title", title))
		}
		return nil
	}

	if len(d.Mindmap.Mindmaps) != len(d.Sections) {
		return goerr.New("mindmaps not aligned with sections",
			goerr.V("mindmaps", len(d.Mindmap.Mindmaps)),
			goerr.V("sections", len(d.Sections)))
	}

	for _, c := range d.Cards {
		if err := check("card", c.SectionIndex, c.SectionTitle); err != nil {
			return err
		}
	}
	for _, m := range d.Mindmap.Mindmaps {
		if err := check("mindmap", m.SectionIndex, m.SectionTitle); err != nil {
			return err
		}
	}
	for _, q := range d.PYQ.Prelims {
		if err := check("prelims", q.SectionIndex, q.SectionTitle); err != nil {
			return err
		}
	}
	for _, q := range d.PYQ.Mains {
		if err := check("mains", q.SectionIndex, q.SectionTitle); err != nil {
			return err
		}
	}
	return nil
}

// GenerationSummary is the result reported by a successful pipeline run.
type GenerationSummary struct {
	Message       string  `json:"message"`
	Date          DateKey `json:"date"`
	SectionsCount int     `json:"sections_count"`
	CardsCount    int     `json:"cards_count"`
	MindmapsCount int     `json:"mindmaps_count"`
	PrelimsCount  int     `json:"prelims_count"`
	MainsCount    int     `json:"mains_count"`
}
