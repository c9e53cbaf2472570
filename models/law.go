package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Law is a curated law library entry with a citizen-facing and a
// lawyer-facing view.
// Collection: laws
type Law struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title        string `bson:"title" json:"title"`
	Slug         string `bson:"slug,omitempty" json:"slug"`
	StatuteName  string `bson:"statute_name,omitempty" json:"statute_name"`
	Year         int    `bson:"year,omitempty" json:"year"`
	Category     string `bson:"category" json:"category"`
	LawType      string `bson:"law_type" json:"law_type"` // "statute" or "case"
	CourtLevel   string `bson:"court_level,omitempty" json:"court_level"`
	Jurisdiction string `bson:"jurisdiction,omitempty" json:"jurisdiction"`
	PracticeArea string `bson:"practice_area,omitempty" json:"practice_area"`

	Keywords       []string `bson:"keywords" json:"keywords"`
	Sections       []string `bson:"sections" json:"sections"`
	Situations     []string `bson:"situations" json:"situations"`
	Tags           []string `bson:"tags" json:"tags"`
	RelevanceScore int      `bson:"relevance_score" json:"relevance_score"`

	Citizen CitizenView `bson:"citizen" json:"citizen"`
	Lawyer  LawyerView  `bson:"lawyer" json:"lawyer"`

	Resources   []Resource `bson:"resources" json:"resources"`
	IsPublished bool       `bson:"is_published" json:"is_published"`
}

// CitizenView is the plain-language explanation of a law.
type CitizenView struct {
	Summary         string   `bson:"summary,omitempty" json:"summary"`
	WhatThisMeans   string   `bson:"what_this_means,omitempty" json:"what_this_means"`
	RealLifeExample string   `bson:"real_life_example,omitempty" json:"real_life_example"`
	StepsToTake     []string `bson:"steps_to_take" json:"steps_to_take"`
	WhoToContact    []string `bson:"who_to_contact" json:"who_to_contact"`
	MustKnow        []string `bson:"must_know" json:"must_know"`
	FAQs            []FAQ    `bson:"faqs" json:"faqs"`
}

// LawyerView holds the statutory text and case material.
type LawyerView struct {
	OfficialText      string      `bson:"official_text,omitempty" json:"official_text"`
	Interpretation    string      `bson:"interpretation,omitempty" json:"interpretation"`
	RelatedProvisions []string    `bson:"related_provisions" json:"related_provisions"`
	Citations         []string    `bson:"citations" json:"citations"`
	Judgments         []Judgment  `bson:"judgments" json:"judgments"`
	Amendments        []Amendment `bson:"amendments" json:"amendments"`
	Commentary        string      `bson:"commentary,omitempty" json:"commentary"`
}

type FAQ struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

type Judgment struct {
	CaseName string `bson:"case_name" json:"case_name"`
	Court    string `bson:"court,omitempty" json:"court"`
	Year     string `bson:"year,omitempty" json:"year"`
	Citation string `bson:"citation,omitempty" json:"citation"`
	Holding  string `bson:"holding" json:"holding"`
	Link     string `bson:"link,omitempty" json:"link"`
}

type Amendment struct {
	Date    *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Summary string     `bson:"summary" json:"summary"`
	Type    string     `bson:"type,omitempty" json:"type"`
	Note    string     `bson:"note,omitempty" json:"note"`
}

type Resource struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url" json:"url"`
	Type  string `bson:"type" json:"type"`
}
