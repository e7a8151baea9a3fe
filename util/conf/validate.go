package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists the schema violations of a config file.
type ValidationError struct {
	File   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config file %s: %s", e.File, strings.Join(e.Errors, "; "))
}

func validateFile(name string, schema []byte) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("config file %s: %w", name, err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}

	return &ValidationError{
		File:   name,
		Errors: errs,
	}
}
