package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlert() AvailabilityAlertEvent {
	return AvailabilityAlertEvent{
		InvocationID: "inv-1",
		EventID:      "42",
		LowStock:     []SessionAlert{{SessionID: "1", Start: "2026-04-24 20:00", Remaining: 5}},
		SoldOut:      []SessionAlert{{SessionID: "2", Start: "2026-04-25 20:00", Remaining: 0}},
		GeneratedAt:  "2026-04-01T10:00:00Z",
	}
}

func TestFormatAlert(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"[2026-04-01T10:00:00Z] Availability alert | invocation_id=inv-1 | event_id=42 | "+
			"low_stock=[1@2026-04-24 20:00(5)] | sold_out=[2@2026-04-25 20:00(0)]\n",
		FormatAlert(sampleAlert()))
}

func TestHandleMessageAppendsLine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := &Consumer{LogDir: dir}
	body, err := json.Marshal(sampleAlert())
	require.NoError(t, err)

	require.NoError(t, c.handleMessage(body))
	require.NoError(t, c.handleMessage(body))

	raw, err := os.ReadFile(filepath.Join(dir, "availability.log"))
	require.NoError(t, err)
	assert.Equal(t, FormatAlert(sampleAlert())+FormatAlert(sampleAlert()), string(raw))
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	t.Parallel()
	c := &Consumer{LogDir: t.TempDir()}
	assert.Error(t, c.handleMessage([]byte("{not json")))
}
