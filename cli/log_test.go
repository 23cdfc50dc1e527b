package cli

import (
	"os"
	"testing"

	"github.com/ardnew/elconf/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "flags anywhere",
			args: []string{"fmt", "--log-level", "debug", "a.conf", "--no-log-pretty"},
			want: logConfig{Level: "debug", Pretty: false},
		},
		{
			name: "assigned values",
			args: []string{"--log-format=text", "--log-caller=true", "--log-pretty=false"},
			want: logConfig{Format: "text", Caller: true, Pretty: false},
		},
		{
			name: "negated assignment",
			args: []string{"--no-log-caller=false"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "missing operand",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "invalid bool ignored",
			args: []string{"--log-pretty=maybe"},
			want: logConfig{Pretty: true},
		},
		{
			name: "stops at terminator",
			args: []string{"get", "--", "--log-caller"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}
