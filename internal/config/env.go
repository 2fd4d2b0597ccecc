package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

type setter func(v reflect.Value, raw string) error

var setters = map[reflect.Kind]setter{
	reflect.String: func(v reflect.Value, raw string) error {
		v.SetString(raw)
		return nil
	},
	reflect.Int: func(v reflect.Value, raw string) error {
		n, err := strconv.Atoi(raw)
		if err == nil {
			v.SetInt(int64(n))
		}
		return err
	},
	reflect.Bool: func(v reflect.Value, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err == nil {
			v.SetBool(b)
		}
		return err
	},
	reflect.Float64: func(v reflect.Value, raw string) error {
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			v.SetFloat(f)
		}
		return err
	},
}

// applyEnv overrides every field tagged `env:"NAME"` with $NAME when set.
// Nested config sections are walked recursively.
func applyEnv(cfg *Config) error {
	return walkEnv(reflect.ValueOf(cfg).Elem())
}

func walkEnv(section reflect.Value) error {
	t := section.Type()
	for i := 0; i < t.NumField(); i++ {
		field, meta := section.Field(i), t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := walkEnv(field); err != nil {
				return err
			}
			continue
		}

		name, tagged := meta.Tag.Lookup("env")
		if !tagged {
			continue
		}
		raw, set := os.LookupEnv(name)
		if !set {
			continue
		}

		fn, ok := setters[field.Kind()]
		if !ok {
			return fmt.Errorf("%s: unsupported field kind %s", name, field.Kind())
		}
		if err := fn(field, raw); err != nil {
			return fmt.Errorf("%s=%q: %w", name, raw, err)
		}
	}
	return nil
}
