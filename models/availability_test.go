package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAvailabilityTemplate(t *testing.T) {
	tpl, err := NewAvailabilityTemplate("doc-1", 0, 9*60, 12*60, 30)
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	assert.True(t, tpl.IsAvailable)
	assert.False(t, tpl.CreatedAt.IsZero())
}

func TestNewAvailabilityTemplateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name                      string
		doctorID                  string
		day, start, end, duration int
	}{
		{"missing doctor", "", 0, 540, 720, 30},
		{"day below range", "doc-1", -1, 540, 720, 30},
		{"day above range", "doc-1", 7, 540, 720, 30},
		{"negative start", "doc-1", 0, -30, 720, 30},
		{"end past midnight", "doc-1", 0, 540, 24*60 + 1, 30},
		{"start equals end", "doc-1", 0, 540, 540, 30},
		{"start after end", "doc-1", 0, 720, 540, 30},
		{"zero duration", "doc-1", 0, 540, 720, 0},
		{"negative duration", "doc-1", 0, 540, 720, -30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAvailabilityTemplate(tt.doctorID, tt.day, tt.start, tt.end, tt.duration)
			assert.Error(t, err)
		})
	}
}

func TestValidateRejectsInvertedValidityBounds(t *testing.T) {
	tpl, err := NewAvailabilityTemplate("doc-1", 0, 540, 720, 30)
	require.NoError(t, err)

	tpl.ValidFrom = "2029-06-01"
	tpl.ValidUntil = "2029-01-01"
	assert.Error(t, tpl.Validate())
}

func TestAppliesOn(t *testing.T) {
	tpl, err := NewAvailabilityTemplate("doc-1", 0, 540, 720, 30)
	require.NoError(t, err)

	assert.True(t, tpl.AppliesOn("2029-01-01"), "unbounded template applies everywhere")

	tpl.ValidFrom = "2029-01-01"
	tpl.ValidUntil = "2029-01-31"
	assert.False(t, tpl.AppliesOn("2028-12-31"))
	assert.True(t, tpl.AppliesOn("2029-01-01"), "validFrom is inclusive")
	assert.True(t, tpl.AppliesOn("2029-01-15"))
	assert.True(t, tpl.AppliesOn("2029-01-31"), "validUntil is inclusive")
	assert.False(t, tpl.AppliesOn("2029-02-01"))

	tpl.IsAvailable = false
	assert.False(t, tpl.AppliesOn("2029-01-15"))
}

func TestDescriptorAvailableDefaultsTrue(t *testing.T) {
	d := TemplateDescriptor{}
	assert.True(t, d.Available())

	yes, no := true, false
	d.IsAvailable = &yes
	assert.True(t, d.Available())
	d.IsAvailable = &no
	assert.False(t, d.Available())
}
