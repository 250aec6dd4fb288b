package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgFlags := []string{"-c", "-config"}
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{name: "separate value", args: []string{"-c", "seabook.json", "-d", "seabook.db"}, allowed: cfgFlags,
			want: []string{"-c", "seabook.json"}},
		{name: "equals form", args: []string{"-config=alt.json", "-l", "debug"}, allowed: cfgFlags,
			want: []string{"-config=alt.json"}},
		{name: "equals value starting with dash", args: []string{"-config=-odd.json"}, allowed: cfgFlags,
			want: []string{"-config=-odd.json"}},
		{name: "unknown flags and positionals dropped", args: []string{"-x", "1", "-y=2", "positional"}, allowed: cfgFlags,
			want: []string{}},
		{name: "trailing flag without value", args: []string{"-m"}, allowed: []string{"-m"},
			want: []string{"-m"}},
		{name: "dash token is not a value", args: []string{"-c", "-d", "x.db"}, allowed: cfgFlags,
			want: []string{"-c"}},
		{name: "several allowed flags in order", args: []string{"-d", "/var/lib/seabook.db", "-c", "seabook.json", "-l", "warn"},
			allowed: []string{"-d", "-l"}, want: []string{"-d", "/var/lib/seabook.db", "-l", "warn"}},
		{name: "repeated flag kept", args: []string{"-d", "one.db", "-d", "two.db"}, allowed: []string{"-d"},
			want: []string{"-d", "one.db", "-d", "two.db"}},
		{name: "empty value kept", args: []string{"-m", ""}, allowed: []string{"-m"},
			want: []string{"-m", ""}},
		{name: "no args", args: nil, allowed: cfgFlags, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short form", args: []string{"-c", "/path/short.json"}, want: "/path/short.json"},
		{name: "long form", args: []string{"-config", "/path/long.json"}, want: "/path/long.json"},
		{name: "equals form", args: []string{"-config=/path/eq.json", "-d", "x.db"}, want: "/path/eq.json"},
		{name: "other flags ignored", args: []string{"-d", "seabook.db", "-l", "debug"}, want: ""},
		{name: "last wins", args: []string{"-c", "/path/1.json", "-config", "/path/2.json"}, want: "/path/2.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
