package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectUnknownFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "no unknown fields",
			data: `{"gold": "g", "predicted": "p", "metric": "accuracy"}`,
			want: nil,
		},
		{
			name: "schema key ignored",
			data: `{"$schema": "./config.schema.json", "gold": "g"}`,
			want: nil,
		},
		{
			name: "single unknown",
			data: `{"gold": "g", "threshold": 0.9}`,
			want: []string{`unknown field "threshold" in config (ignored)`},
		},
		{
			name: "sorted output",
			data: `{"zeta": 1, "alpha": 2, "mid": 3}`,
			want: []string{
				`unknown field "alpha" in config (ignored)`,
				`unknown field "mid" in config (ignored)`,
				`unknown field "zeta" in config (ignored)`,
			},
		},
		{
			name: "case sensitive",
			data: `{"Gold": "g"}`,
			want: []string{`unknown field "Gold" in config (ignored)`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectUnknownFields([]byte(tt.data))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("detectUnknownFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadWithWarnings_ParseError(t *testing.T) {
	t.Parallel()
	_, _, err := LoadWithWarnings("formeval.json", []byte(`{"gold": 1}`))
	if err == nil {
		t.Fatal("LoadWithWarnings() expected error for wrong field type")
	}
	if !strings.Contains(err.Error(), "formeval.json") {
		t.Errorf("error = %q, want config path in message", err)
	}
}

func TestGetJSONFields(t *testing.T) {
	t.Parallel()
	fields := getJSONFields(reflect.TypeOf(Config{}))

	for _, name := range []string{"gold", "predicted", "metric", "format", "output", "continue_on_error", "log_level"} {
		if !fields[name] {
			t.Errorf("getJSONFields() missing %q", name)
		}
	}
	if len(fields) != 7 {
		t.Errorf("getJSONFields() returned %d fields, want 7", len(fields))
	}
}
