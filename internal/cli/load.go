package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/qecdev/graphify/internal/dem"
	"github.com/qecdev/graphify/internal/parser"
)

// loadModel reads and parses a DEM file, reporting every error through the
// formatter. File and parse failures are command-level errors (exit code 2):
// no transformation runs against a model that failed to load.
func loadModel(formatter *OutputFormatter, path string) (*dem.Model, error) {
	if _, err := os.Stat(path); err != nil {
		message := fmt.Sprintf("model file not found: %s", path)
		_ = formatter.Error(ErrCodeRead, message, nil)
		return nil, WrapExitError(ExitCommandError, message, err)
	}

	model, errs := parser.ParseFile(path)
	if len(errs) == 0 {
		return model, nil
	}

	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			cliErrors[i] = CLIError{Code: parseErrorCode(err), Message: err.Error()}
		}
		_ = formatter.Error(ErrCodeParse, fmt.Sprintf("%s: %d parse error(s)", path, len(errs)), cliErrors)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Failed to parse %s\n\n", path)
		for _, err := range errs {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", parseErrorCode(err), err.Error())
		}
	}

	return nil, NewExitError(ExitCommandError, fmt.Sprintf("parsing %s failed with %d error(s)", path, len(errs)))
}

// parseErrorCode maps a load error to an output error code.
func parseErrorCode(err error) string {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return ErrCodeParse
	}
	return ErrCodeRead
}
