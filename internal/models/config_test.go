package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAppConfigDecode(t *testing.T) {
	tests := []struct {
		name string
		row  AppConfig
		want ConfigValue
	}{
		{
			name: "string",
			row:  AppConfig{UniqueName: "greeting", Value: strPtr("hello"), Type: "str"},
			want: ConfigValue{Type: ConfigString, Str: "hello"},
		},
		{
			name: "missing type defaults to string",
			row:  AppConfig{UniqueName: "greeting", Value: strPtr("hi")},
			want: ConfigValue{Type: ConfigString, Str: "hi"},
		},
		{
			name: "nil value decodes as empty string",
			row:  AppConfig{UniqueName: "greeting", Type: "str"},
			want: ConfigValue{Type: ConfigString},
		},
		{
			name: "int",
			row:  AppConfig{UniqueName: "max_orders", Value: strPtr("42"), Type: "int"},
			want: ConfigValue{Type: ConfigInt, Int: 42},
		},
		{
			name: "float",
			row:  AppConfig{UniqueName: "fee", Value: strPtr("0.25"), Type: "float"},
			want: ConfigValue{Type: ConfigFloat, Float: 0.25},
		},
		{
			name: "bool",
			row:  AppConfig{UniqueName: "maintenance", Value: strPtr("true"), Type: "bool"},
			want: ConfigValue{Type: ConfigBool, Bool: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.row.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppConfigDecodeDatetime(t *testing.T) {
	row := AppConfig{UniqueName: "opens_at", Value: strPtr("2025-03-01 09:30:00"), Type: "datetime"}
	got, err := row.Decode()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), got.Time)
}

func TestAppConfigDecodeTimeWithHint(t *testing.T) {
	row := AppConfig{
		UniqueName: "close_time",
		Value:      strPtr("11:45 PM"),
		Type:       "time",
		FormatHint: strPtr("3:04 PM"),
	}
	got, err := row.Decode()
	require.NoError(t, err)
	assert.Equal(t, 23, got.Time.Hour())
	assert.Equal(t, 45, got.Time.Minute())
}

func TestAppConfigDecodeErrors(t *testing.T) {
	rows := []AppConfig{
		{UniqueName: "n", Value: strPtr("not-a-number"), Type: "int"},
		{UniqueName: "f", Value: strPtr("12,5"), Type: "float"},
		{UniqueName: "b", Value: strPtr("да"), Type: "bool"},
		{UniqueName: "d", Value: strPtr("03/01/2025"), Type: "datetime"},
		{UniqueName: "x", Value: strPtr("v"), Type: "json"},
	}
	for _, row := range rows {
		_, err := row.Decode()
		assert.Error(t, err, "type %q value %v", row.Type, row.Value)
	}
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ivan Petrov", User{FirstName: strPtr("Ivan"), LastName: strPtr("Petrov")}.DisplayName())
	assert.Equal(t, "Ivan", User{FirstName: strPtr("Ivan")}.DisplayName())
	assert.Equal(t, "ivan99", User{Username: strPtr("ivan99")}.DisplayName())
	assert.Equal(t, "", User{}.DisplayName())
}
