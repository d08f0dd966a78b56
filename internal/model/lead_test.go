package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLead_Defaults(t *testing.T) {
	l := NewLead("", "", " ", "", 0)
	assert.Equal(t, UnknownName, l.Name)
	assert.Equal(t, "", l.Email)
	assert.Equal(t, UnknownIndustry, l.Industry)
	assert.Equal(t, StatusNew, l.Status)
	assert.Equal(t, 0, l.Score)
	assert.False(t, l.HasEmail())
}

func TestNewLead_KeepsValues(t *testing.T) {
	l := NewLead(" Jane ", "jane@x.com", "Healthcare", "Contacted", 3)
	assert.Equal(t, "Jane", l.Name)
	assert.Equal(t, "jane@x.com", l.Email)
	assert.Equal(t, "Healthcare", l.Industry)
	assert.Equal(t, "Contacted", l.Status)
	assert.Equal(t, 3, l.Score)
	assert.True(t, l.HasEmail())
}

func TestNewLead_ClampsNegativeScore(t *testing.T) {
	assert.Equal(t, 0, NewLead("a", "b", "c", "d", -4).Score)
}

func TestLead_Row(t *testing.T) {
	l := NewLead("Jane", "jane@x.com", "Healthcare", "New", 3)
	row := l.Row()
	assert.Len(t, row, RowWidth)
	assert.Equal(t, []any{"Jane", "jane@x.com", "Healthcare", "New", 3, ""}, row)
	assert.Equal(t, "New", row[StatusColumn])
}
