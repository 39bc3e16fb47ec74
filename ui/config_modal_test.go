package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfigValue_PreservesTypes(t *testing.T) {
	tests := []struct {
		name     string
		existing interface{}
		input    string
		want     interface{}
	}{
		{"bool stays bool", true, "false", false},
		{"number stays number", float64(30), "60", float64(60)},
		{"string stays string", "old", "42", "42"},
		{"nil becomes string", nil, "hello", "hello"},
		{"invalid bool falls back to string", true, "maybe", "maybe"},
		{"invalid number falls back to string", float64(1), "fast", "fast"},
		{"list parsed as json", []interface{}{"a"}, `["a","b"]`, []interface{}{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseConfigValue(tt.existing, tt.input))
		})
	}
}

func TestFormatConfigValue(t *testing.T) {
	assert.Equal(t, "hello", formatConfigValue("hello"))
	assert.Equal(t, "true", formatConfigValue(true))
	assert.Equal(t, "30", formatConfigValue(float64(30)))
	assert.Equal(t, "30.5", formatConfigValue(float64(30.5)))
	assert.Equal(t, "", formatConfigValue(nil))
	assert.Equal(t, `["a","b"]`, formatConfigValue([]interface{}{"a", "b"}))
}
