package envstruct_test

import (
	"testing"
	"time"

	"github.com/smarthealthquote/smarthealthquote/internal/envstruct"
	"github.com/stretchr/testify/require"
)

func lookupFromMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func TestPopulate(t *testing.T) {
	type config struct {
		Addr       string        `env:"TEST_ADDR" envDefault:"localhost:4000"`
		SQLiteURL  string        `env:"TEST_SQLITE_URL"`
		ReplyDelay time.Duration `env:"TEST_REPLY_DELAY" envDefault:"900ms"`
		MaxRetries int           `env:"TEST_MAX_RETRIES" envDefault:"3"`
		Debug      bool          `env:"TEST_DEBUG" envDefault:"false"`
	}

	tests := []struct {
		name    string
		env     map[string]string
		want    config
		wantErr bool
	}{
		{
			name: "all values from environment",
			env: map[string]string{
				"TEST_ADDR":        "localhost:0",
				"TEST_SQLITE_URL":  ":memory:",
				"TEST_REPLY_DELAY": "0s",
				"TEST_MAX_RETRIES": "5",
				"TEST_DEBUG":       "true",
			},
			want: config{
				Addr:       "localhost:0",
				SQLiteURL:  ":memory:",
				ReplyDelay: 0,
				MaxRetries: 5,
				Debug:      true,
			},
		},
		{
			name: "defaults fill missing variables",
			env:  map[string]string{"TEST_SQLITE_URL": "./test.sqlite"},
			want: config{
				Addr:       "localhost:4000",
				SQLiteURL:  "./test.sqlite",
				ReplyDelay: 900 * time.Millisecond,
				MaxRetries: 3,
				Debug:      false,
			},
		},
		{
			name:    "missing variable without default",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "malformed duration",
			env: map[string]string{
				"TEST_SQLITE_URL":  ":memory:",
				"TEST_REPLY_DELAY": "not-a-duration",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config
			err := envstruct.Populate(&cfg, lookupFromMap(tt.env))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg)
		})
	}
}

func TestPopulate_invalidTarget(t *testing.T) {
	type config struct {
		Addr string `env:"TEST_ADDR" envDefault:"localhost:4000"`
	}

	var cfg config
	err := envstruct.Populate(cfg, lookupFromMap(nil))
	require.ErrorIs(t, err, envstruct.ErrInvalidValue)

	var notStruct string
	err = envstruct.Populate(&notStruct, lookupFromMap(nil))
	require.ErrorIs(t, err, envstruct.ErrInvalidValue)
}
