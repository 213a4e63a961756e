package models

import (
	"fmt"
	"strconv"
	"time"
)

// ConfigType is the declared value type of an app_config row.
type ConfigType string

const (
	ConfigString   ConfigType = "str"
	ConfigInt      ConfigType = "int"
	ConfigFloat    ConfigType = "float"
	ConfigBool     ConfigType = "bool"
	ConfigDatetime ConfigType = "datetime"
	ConfigTime     ConfigType = "time"
)

// Default layouts for date/time values when the row carries no format hint.
const (
	defaultDatetimeLayout = "2006-01-02 15:04:05"
	defaultTimeLayout     = "15:04"
)

// AppConfig is a raw config row: a string value with a side-channel type
// tag. Decode turns it into a ConfigValue; the raw form never crosses the
// repository boundary.
type AppConfig struct {
	ID            int64   `db:"id"`
	UniqueName    string  `db:"unique_name"`
	Value         *string `db:"value"`
	Type          string  `db:"type"`
	FormatHint    *string `db:"format_hint"`
	Description   *string `db:"description"`
	DescriptionEn *string `db:"description_en"`
}

// ConfigValue is a decoded config value. Exactly the field matching Type
// is meaningful.
type ConfigValue struct {
	Type  ConfigType
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
}

// Decode parses the raw value according to the declared type. A malformed
// stored value is an error from the storage side, not a validation concern
// of the caller.
func (c AppConfig) Decode() (ConfigValue, error) {
	raw := ""
	if c.Value != nil {
		raw = *c.Value
	}
	v := ConfigValue{Type: ConfigType(c.Type)}

	switch v.Type {
	case ConfigString, "":
		v.Type = ConfigString
		v.Str = raw
	case ConfigInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ConfigValue{}, fmt.Errorf("config %q: parse int %q: %w", c.UniqueName, raw, err)
		}
		v.Int = n
	case ConfigFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ConfigValue{}, fmt.Errorf("config %q: parse float %q: %w", c.UniqueName, raw, err)
		}
		v.Float = f
	case ConfigBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return ConfigValue{}, fmt.Errorf("config %q: parse bool %q: %w", c.UniqueName, raw, err)
		}
		v.Bool = b
	case ConfigDatetime:
		t, err := time.Parse(c.layout(defaultDatetimeLayout), raw)
		if err != nil {
			return ConfigValue{}, fmt.Errorf("config %q: parse datetime %q: %w", c.UniqueName, raw, err)
		}
		v.Time = t
	case ConfigTime:
		t, err := time.Parse(c.layout(defaultTimeLayout), raw)
		if err != nil {
			return ConfigValue{}, fmt.Errorf("config %q: parse time %q: %w", c.UniqueName, raw, err)
		}
		v.Time = t
	default:
		return ConfigValue{}, fmt.Errorf("config %q: unknown type %q", c.UniqueName, c.Type)
	}
	return v, nil
}

func (c AppConfig) layout(fallback string) string {
	if c.FormatHint != nil && *c.FormatHint != "" {
		return *c.FormatHint
	}
	return fallback
}
