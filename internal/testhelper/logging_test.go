package testhelper

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLogging(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	testCases := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"Unset disables", "", zerolog.Disabled},
		{"Named level", "warn", zerolog.WarnLevel},
		{"Numeric level", "1", zerolog.InfoLevel},
		{"Unknown means debug", "yes", zerolog.DebugLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ConfigureLogging(tc.level)
			assert.Equal(t, tc.expected, zerolog.GlobalLevel())
		})
	}
}
