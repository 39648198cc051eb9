package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var output map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output), "logger output should be valid JSON")
	return output
}

func TestNewWithWriter_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("vault", "abc").Uint64("amount", 500).Msg("deposit processed")

	output := decodeLine(t, &buf)
	assert.Equal(t, "deposit processed", output["message"])
	assert.Equal(t, "abc", output["vault"])
	assert.Equal(t, float64(500), output["amount"])
	assert.Equal(t, "info", output["level"])
	assert.Contains(t, output, "time")
}

func TestParseLevel_Filtering(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.level, &buf)

			log.Debug().Msg("d")
			assert.Equal(t, tt.debugSeen, buf.Len() > 0)

			buf.Reset()
			log.Info().Msg("i")
			assert.Equal(t, tt.infoSeen, buf.Len() > 0)
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := WithComponent(NewWithWriter("info", &buf), ComponentLedger)

	log.Info().Msg("tagged")

	output := decodeLine(t, &buf)
	assert.Equal(t, "ledger", output["component"])
}

func TestNew_PrettyMode(t *testing.T) {
	log := New("info", true)
	log.Info().Msg("pretty mode test")
}
