package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/style"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	knownSizes = map[string]struct{}{"xs": {}, "sm": {}, "md": {}, "lg": {}, "xl": {}}
)

// Validator returns the shared validator with the form-specific rules
// registered. Loaders in other packages reuse it.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			value, ok := field.Interface().(style.Responsive[style.Size])
			if !ok {
				return nil
			}
			return value.Classes("")
		}, style.Responsive[style.Size]{})

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			value, ok := field.Interface().(style.Responsive[int])
			if !ok {
				return nil
			}
			return value.Classes("")
		}, style.Responsive[int]{})

		_ = v.RegisterValidation("sizes", func(fl validator.FieldLevel) bool {
			for _, token := range strings.Fields(fl.Field().String()) {
				if _, ok := knownSizes[breakpointValue(token)]; !ok {
					return false
				}
			}
			return true
		})

		_ = v.RegisterValidation("columns", func(fl validator.FieldLevel) bool {
			for _, token := range strings.Fields(fl.Field().String()) {
				switch breakpointValue(token) {
				case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
				default:
					return false
				}
			}
			return true
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks the enumerated settings values.
func Validate(settings Settings) error {
	if err := Validator().Struct(settings); err != nil {
		return fmt.Errorf("config: invalid settings: %w", err)
	}
	return nil
}

// Parse decodes YAML settings and validates them.
func Parse(data []byte) (Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("config: decode settings: %w", err)
	}
	if err := Validate(settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Load reads and parses a YAML settings file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

func breakpointValue(token string) string {
	if idx := strings.LastIndex(token, ":"); idx >= 0 {
		return token[idx+1:]
	}
	return token
}
