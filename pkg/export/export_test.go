package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Type", "Description"},
		Rows: []map[string]string{
			{"Type": "room_conflict", "Description": "Room 'Lab A' double-booked"},
			{"Type": "capacity_exceeded", "Description": "45 students exceed capacity"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t,
		"Type,Description\n"+
			"room_conflict,Room 'Lab A' double-booked\n"+
			"capacity_exceeded,45 students exceed capacity\n",
		string(payload))
}

func TestCSVRenderMissingCellsAreEmpty(t *testing.T) {
	payload, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"A", "B"},
		Rows:    []map[string]string{{"A": "only"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "A,B\nonly,\n", string(payload))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDataset(), "Conflict Report")
	require.NoError(t, err)
	require.True(t, len(payload) > 4)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
