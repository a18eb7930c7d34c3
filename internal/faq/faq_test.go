package faq

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasThreeEntries(t *testing.T) {
	doc := Default()
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Entries, 3)
}

func TestPair(t *testing.T) {
	entries, err := Pair(
		[]string{"Q1?", "Q2?"},
		[]string{"A1.", "A2."},
	)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Question: "Q2?", Answer: "A2."}, entries[1])
}

func TestPairLengthMismatch(t *testing.T) {
	_, err := Pair([]string{"Q1?", "Q2?"}, []string{"A1."})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestRenderOneHeadingPerQuestion(t *testing.T) {
	doc := Default()
	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Frequently Asked Questions\n"))
	assert.Equal(t, len(doc.Entries), strings.Count(out, "### "))
	for _, e := range doc.Entries {
		assert.Contains(t, out, "### "+e.Question+"\n")
		assert.Contains(t, out, e.Answer)
	}
	assert.NotContains(t, out, "---", "no front matter")
}

func TestValidateRejectsEmptyFields(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"no entries", Document{}},
		{"empty question", Document{Entries: []Entry{{Answer: "a"}}}},
		{"empty answer", Document{Entries: []Entry{{Question: "q"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.doc.Validate())
		})
	}
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "faq.yml")
	require.NoError(t, os.WriteFile(src, []byte(`
title: Help
entries:
  - question: Why?
    answer: Because.
`), 0o644))

	doc, err := Load(src)
	require.NoError(t, err)
	assert.Equal(t, "Help", doc.Title)

	out := filepath.Join(dir, "faq.md")
	require.NoError(t, doc.WriteFile(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### Why?")

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
}
