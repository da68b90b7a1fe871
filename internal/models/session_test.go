package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyScoreAccounting(t *testing.T) {
	s := NewSessionState("ex-1")

	// First correct answer inserts and counts.
	s.Apply(Result{ItemID: "i1", Correct: true, Checked: true})
	assert.Equal(t, 1, s.Correct)

	// Re-applying the same judgment changes nothing.
	s.Apply(Result{ItemID: "i1", Correct: true, Checked: true})
	assert.Equal(t, 1, s.Correct)

	// Correct to incorrect subtracts exactly one.
	s.Apply(Result{ItemID: "i1", Correct: false, Checked: true})
	assert.Equal(t, 0, s.Correct)

	// Incorrect to incorrect stays put.
	s.Apply(Result{ItemID: "i1", Correct: false, Checked: true})
	assert.Equal(t, 0, s.Correct)

	// Incorrect to correct adds exactly one.
	s.Apply(Result{ItemID: "i1", Correct: true, Checked: true})
	assert.Equal(t, 1, s.Correct)

	// A second item accumulates independently.
	s.Apply(Result{ItemID: "i2", Correct: true, Checked: true})
	assert.Equal(t, 2, s.Correct)
	assert.Len(t, s.Responses, 2)
}

func TestReset(t *testing.T) {
	s := NewSessionState("ex-1")
	s.Apply(Result{ItemID: "i1", Correct: true, Checked: true})
	s.Index = 3

	s.Reset()
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 0, s.Correct)
	assert.Empty(t, s.Responses)
	assert.Nil(t, s.CompletedAt)
}
