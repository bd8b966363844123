package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultMaxChunkSize = 200
	DefaultChunkOverlap = 20
)

// DefaultSeparators are tried in order when splitting content server-side.
var DefaultSeparators = []string{"\n\n", "\n"}

var validate = validator.New()

func init() {
	// Report wire field names, not Go field names, in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ChunkParams controls how the server splits a value's content before
// embedding it. Splitting itself happens server-side; the client only
// validates and transmits the configuration.
type ChunkParams struct {
	MaxChunkSize     int      `json:"max_chunk_size" validate:"gt=0"`
	ChunkOverlap     int      `json:"chunk_overlap"  validate:"gte=0"`
	Separators       []string `json:"separators"`
	IsSeparatorRegex bool     `json:"is_separator_regex"`
	KeepSeparator    bool     `json:"keep_separator"`
}

// DefaultChunkParams returns the server's documented chunking defaults.
func DefaultChunkParams() ChunkParams {
	separators := make([]string, len(DefaultSeparators))
	copy(separators, DefaultSeparators)

	return ChunkParams{
		MaxChunkSize: DefaultMaxChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   separators,
	}
}

// Validate checks the chunking configuration. The first violated rule wins.
func (p ChunkParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return newFieldError(fieldErrors[0])
		}
		return err
	}

	if p.ChunkOverlap >= p.MaxChunkSize {
		return NewValidationError(
			"chunk_overlap",
			fmt.Sprintf(
				"must be less than max_chunk_size (%d >= %d)",
				p.ChunkOverlap,
				p.MaxChunkSize,
			),
		)
	}

	if p.IsSeparatorRegex {
		for _, separator := range p.Separators {
			if _, err := regexp.Compile(separator); err != nil {
				return NewValidationError(
					"separators",
					fmt.Sprintf("%q is not a valid regular expression", separator),
				)
			}
		}
	}

	return nil
}

func newFieldError(fe validator.FieldError) error {
	var message string
	switch fe.Tag() {
	case "gt":
		message = fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		message = fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		message = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return NewValidationError(fe.Field(), message)
}
