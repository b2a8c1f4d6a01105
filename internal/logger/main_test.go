package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLog() Log {
	return Log{
		LogLevel:    "info",
		AppName:     "clearlane-web",
		ServiceName: "clearlane-web",
		Console:     Console{Enabled: true},
	}
}

func TestInit(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(*Log)
		expectedError error
	}{
		{
			name:   "valid console config",
			mutate: func(_ *Log) {},
		},
		{
			name:          "unsupported log level",
			mutate:        func(l *Log) { l.LogLevel = "chatty" },
			expectedError: nil, // wrapped parse error, checked by require.Error below
		},
		{
			name:          "missing service name",
			mutate:        func(l *Log) { l.ServiceName = "" },
			expectedError: ErrServiceNameIsEmpty,
		},
		{
			name:          "missing app name",
			mutate:        func(l *Log) { l.AppName = "" },
			expectedError: ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validLog()
			tc.mutate(&cfg)

			err := Init(cfg)

			switch {
			case tc.expectedError != nil:
				require.ErrorIs(t, err, tc.expectedError)
			case cfg.LogLevel != "info":
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestInitFileLogger(t *testing.T) {
	cfg := validLog()
	cfg.Console.Enabled = false
	cfg.File = LogFile{
		Enabled:  true,
		Path:     t.TempDir(),
		ErrorLog: "error.log",
		InfoLog:  "info.log",
		TraceLog: "trace.log",
		WarnLog:  "warn.log",
	}

	require.NoError(t, Init(cfg))
}

func TestNewConsoleWriter(t *testing.T) {
	plain := NewConsoleWriter(validLog())
	assert.NotNil(t, plain)

	pretty := validLog()
	pretty.Console.UseConsoleWriter = true
	assert.NotNil(t, NewConsoleWriter(pretty))
}
