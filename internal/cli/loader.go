package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/defkit/astgen/internal/ir"
)

// CLI error codes (E001-E099)
const (
	ErrCodeGeneric     = "E001" // unclassified error
	ErrCodeNotFound    = "E005" // input file not found
	ErrCodeReadFailed  = "E006" // input file unreadable
	ErrCodeParseFailed = "E007" // input is not a valid IR document
)

// LoadError represents an error that occurred while loading an IR document.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDefinitions reads and decodes a serialized IR document from path.
func LoadDefinitions(path string) (*ir.Definitions, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error accessing definitions file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("not a file: %s", path)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading definitions file: %v", err)}
	}

	var defs ir.Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing definitions file: %v", err)}
	}
	return &defs, nil
}
