package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"notes.pdf":           "notes.pdf",
		"my notes (v2).pdf":   "my_notes__v2_.pdf",
		"../../etc/passwd":    "passwd",
		`C:\temp\report.docx`: "report.docx",
		"résumé.pdf":          "r_sum_.pdf",
		"  spaced.txt  ":      "spaced.txt",
	}
	for in, want := range cases {
		assert.Equal(t, want, safeName(in), "input %q", in)
	}
}

func TestSemesterPattern(t *testing.T) {
	assert.True(t, semesterRe.MatchString("2026-1"))
	assert.True(t, semesterRe.MatchString("2025-2"))
	assert.False(t, semesterRe.MatchString("2026-3"))
	assert.False(t, semesterRe.MatchString("26-1"))
	assert.False(t, semesterRe.MatchString("2026"))
	assert.False(t, semesterRe.MatchString("2026-1x"))
}
