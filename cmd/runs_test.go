package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/fieldscout/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:     "abc12345-6789-0000-0000-000000000000",
			Params: model.RunParams{DatasetPath: "samui.xlsx", TopN: 10},
			Status: model.RunStatusCompleted,
			Summary: &model.RunSummary{
				ZonesReported: 10,
				POIFound:      8,
			},
			CreatedAt: now,
			UpdatedAt: now.Add(3 * time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Params:    model.RunParams{DatasetPath: "phangan.csv", TopN: 5},
			Status:    model.RunStatusFailed,
			CreatedAt: now.Add(-1 * time.Hour),
			UpdatedAt: now.Add(-59 * time.Minute),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "DATASET")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "abc12345")
	assert.Contains(t, output, "samui.xlsx")
	assert.Contains(t, output, "completed")
	assert.Contains(t, output, "10")
	assert.Contains(t, output, "3m0s")
	assert.Contains(t, output, "phangan.csv")
	assert.Contains(t, output, "failed")
	// Runs without a summary render placeholders instead of zeros.
	assert.Contains(t, output, "-")
	assert.NotContains(t, output, "abc12345-6789")
}

func TestFormatRunsListTruncatesLongDatasetPath(t *testing.T) {
	runs := []model.Run{
		{
			ID:     "abc12345-6789-0000-0000-000000000000",
			Params: model.RunParams{DatasetPath: "/data/exports/2026/quarter-one/koh-samui-full-inventory.xlsx"},
			Status: model.RunStatusRunning,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	assert.NotContains(t, buf.String(), "koh-samui-full-inventory.xlsx")
	assert.Contains(t, buf.String(), "...")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789-0000-0000-000000000000"))
	assert.Equal(t, "short", truncateID("short"))
	assert.Equal(t, "", truncateID(""))
}
