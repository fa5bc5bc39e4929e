package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/spherical/question-splitter/internal/domain"
)

func TestUI_SummaryLines(t *testing.T) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	u := NewWithWriters(&out, &errOut, false)

	u.Written(3, domain.MultipleChoice, "mcq_questions.txt")
	u.Written(1, domain.YesNo, "yes_no_questions.txt")
	u.Written(0, domain.ImageBased, "image_questions.txt")
	u.Saved(4, "postgres")

	assert.Equal(t,
		"Written 3 MCQ questions to mcq_questions.txt\n"+
			"Written 1 yes/no questions to yes_no_questions.txt\n"+
			"Written 0 image-based questions to image_questions.txt\n"+
			"Saved 4 questions to postgres database\n",
		out.String())
	assert.Empty(t, errOut.String())
}

func TestUI_ErrorGoesToErrOut(t *testing.T) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	u := NewWithWriters(&out, &errOut, false)

	u.Error("source unavailable: %s", "x.pdf")

	assert.Empty(t, out.String())
	assert.Equal(t, "✗ source unavailable: x.pdf\n", errOut.String())
}

func TestUI_NonInteractiveIgnoresProgress(t *testing.T) {
	var out, errOut bytes.Buffer
	u := NewWithWriters(&out, &errOut, false)

	u.PageProgress(1, 2)
	u.HandleEvent(domain.StreamEvent{Type: domain.EventSinkStarted, Payload: "text"})
	u.HandleEvent(domain.StreamEvent{Type: domain.EventComplete})

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
	assert.Nil(t, u.spinner)
}

func TestUI_InteractiveProgressRendersToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	u := NewWithWriters(&out, &errOut, true)

	u.PageProgress(1, 2)
	u.PageProgress(2, 2)

	assert.Nil(t, u.bar)
	assert.Contains(t, errOut.String(), "Extracting")
	assert.Empty(t, out.String())
}
