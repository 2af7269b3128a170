package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// processStructFields applies every set environment variable named by an
// `env` tag, descending into the config sections
func processStructFields(s interface{}) error {
	return applyEnv(reflect.Indirect(reflect.ValueOf(s)))
}

func applyEnv(section reflect.Value) error {
	if section.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := section.Type().Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setFieldFromEnv(field, raw); err != nil {
			return fmt.Errorf("failed to set field %s from env var %s: %w", meta.Name, name, err)
		}
	}
	return nil
}

// setFieldFromEnv parses raw into the field's kind. String slices are comma
// separated with blanks dropped.
func setFieldFromEnv(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		items := make([]string, 0)
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}
