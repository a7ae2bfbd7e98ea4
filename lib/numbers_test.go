package lib

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber_Format(t *testing.T) {
	number := GenerateOrderNumber()

	assert.Regexp(t, `^ORD-\d+-[A-Z0-9]{6}$`, number)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), millis, 5000)
}

func TestFormatReceiptNumber(t *testing.T) {
	day := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "RCP-20260828-0001", FormatReceiptNumber(day, 1))
	assert.Equal(t, "RCP-20260828-0042", FormatReceiptNumber(day, 42))
	assert.Equal(t, "RCP-20260828-12345", FormatReceiptNumber(day, 12345), "sequences past 9999 keep their full width")
}
