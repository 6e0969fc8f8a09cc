package application

import (
	"fmt"
	"strings"

	"othereditor/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "editorID" -> "editor ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"editorID": "editor ID",
		"filePath": "file path",
		"binPath":  "binary path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateEditor parses free text into a supported editor.
// Returns a ValidationError naming the supported editors otherwise.
func ValidateEditor(fieldName, value string) (domain.EditorID, error) {
	if err := ValidateRequired(fieldName, value); err != nil {
		return "", err
	}

	id, err := domain.ParseEditorID(value)
	if err != nil {
		names := make([]string, 0, len(domain.Editors))
		for _, e := range domain.Editors {
			names = append(names, e.String())
		}
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown editor %q (expected one of %s)", value, strings.Join(names, ", ")),
			Err:     err,
		}
	}
	return id, nil
}
