package chart

import (
	"fmt"
	"strings"

	"cardash/internal/listing"
)

// MissingColumnsError reports a builder input that lacks required columns.
// It is a contract violation; nothing is rendered.
type MissingColumnsError struct {
	Builder string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: input must include columns: %s", e.Builder, strings.Join(e.Missing, ", "))
}

func requireColumns(builder string, sub listing.Subset, cols ...string) error {
	if missing := sub.Missing(cols...); len(missing) > 0 {
		return &MissingColumnsError{Builder: builder, Missing: missing}
	}
	return nil
}
