package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_JSONOutput(t *testing.T) {
	defer func() { Logger = zerolog.Nop() }()
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	InitWithWriter("pos-test", false, &buf)
	SetLevel("info")

	Info(context.Background()).Str("invoice_id", "INV-0001").Msg("Checkout completed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pos-test", entry["service"])
	assert.Equal(t, "INV-0001", entry["invoice_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetLevel_FiltersLowerLevels(t *testing.T) {
	defer func() { Logger = zerolog.Nop() }()
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	InitWithWriter("pos-test", false, &buf)

	SetLevel("warn")
	Info(context.Background()).Msg("hidden")
	assert.Zero(t, buf.Len())

	Warn(context.Background()).Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevel_UnknownFallsBackToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	SetLevel("loud")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
