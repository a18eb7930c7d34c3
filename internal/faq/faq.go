// Package faq renders question/answer lists as markdown.
package faq

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrLengthMismatch is returned by Pair when the question and answer lists
// cannot be zipped positionally.
var ErrLengthMismatch = errors.New("faq: question and answer lists differ in length")

// Entry is a single question with its answer.
type Entry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Document is a titled collection of FAQ entries.
type Document struct {
	Title   string  `yaml:"title"`
	Entries []Entry `yaml:"entries"`
}

// Default returns the built-in three-entry FAQ.
func Default() *Document {
	return &Document{
		Title: "Frequently Asked Questions",
		Entries: []Entry{
			{
				Question: "What does docsmith do?",
				Answer:   "It automates documentation chores: source introspection reports, OpenAPI specs, workflow diagrams, FAQ pages and unit-test stubs.",
			},
			{
				Question: "How do the docs stay up to date?",
				Answer:   "Run docsmith in watch mode or wire it into CI; every run regenerates the artifacts from the current source tree.",
			},
			{
				Question: "Which output formats are supported?",
				Answer:   "JSON and YAML for machine-readable docs, markdown for prose, and Graphviz DOT (plus rendered images) for diagrams.",
			},
		},
	}
}

// Pair zips questions with answers positionally. Unlike a naive zip it
// refuses mismatched lengths instead of silently dropping the tail.
func Pair(questions, answers []string) ([]Entry, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("%w: %d questions, %d answers", ErrLengthMismatch, len(questions), len(answers))
	}
	entries := make([]Entry, len(questions))
	for i := range questions {
		entries[i] = Entry{Question: questions[i], Answer: answers[i]}
	}
	return entries, nil
}

// Load reads a FAQ document from a YAML file. Every entry must have both a
// question and an answer.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read faq file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse faq file: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate rejects documents with empty questions or answers.
func (d *Document) Validate() error {
	if len(d.Entries) == 0 {
		return fmt.Errorf("faq: document has no entries")
	}
	for i, e := range d.Entries {
		if e.Question == "" {
			return fmt.Errorf("faq: entry %d has an empty question", i)
		}
		if e.Answer == "" {
			return fmt.Errorf("faq: entry %d has an empty answer", i)
		}
	}
	return nil
}

// Render writes the document as markdown: a title heading followed by one
// "###" heading per question. No front matter, no metadata.
func (d *Document) Render(w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	title := d.Title
	if title == "" {
		title = "Frequently Asked Questions"
	}
	if _, err := fmt.Fprintf(w, "# %s\n", title); err != nil {
		return err
	}
	for _, e := range d.Entries {
		if _, err := fmt.Fprintf(w, "\n### %s\n\n%s\n", e.Question, e.Answer); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile renders the document into path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("create faq output: %w", err)
	}
	defer func() { _ = f.Close() }()
	return d.Render(f)
}
