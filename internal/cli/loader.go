package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tally/internal/compiler"
	"github.com/roach88/tally/internal/ir"
)

// LoadMode controls how errors are handled during suite loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the suites loaded from a directory.
type LoadResult struct {
	Suites    []*ir.Suite
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadError represents an error that occurred during suite loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Line returns the CUE source line of the error, or 0.
func (e *LoadError) Line() int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// LoadSuites loads and compiles the CUE suites under the `suite:` field of
// the package in dir.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
//
// A nil LoadResult means nothing could be loaded at all.
func LoadSuites(dir string, mode LoadMode) (*LoadResult, []error) {
	value, fileCount, loadErr := buildPackage(dir)
	if loadErr != nil {
		return nil, []error{loadErr}
	}
	result := &LoadResult{CUEValue: value, FileCount: fileCount}

	var errs []error
	// fail records err and reports whether loading should stop.
	fail := func(err error) bool {
		errs = append(errs, err)
		return mode == LoadModeFailFast
	}

	suitesVal := value.LookupPath(cue.ParsePath("suite"))
	if !suitesVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: "no suites found: define them under a top-level suite: field"}}
	}

	iter, err := suitesVal.Fields()
	if err != nil {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating suites: %v", err)}}
	}
	for iter.Next() {
		s, err := compiler.CompileSuite(iter.Value())
		if err != nil {
			if fail(convertCompileError(err, "suite."+iter.Selector().String())) {
				return result, errs
			}
			continue
		}
		result.Suites = append(result.Suites, s)
	}

	if len(result.Suites) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no suites found: the suite: field is empty"})
	}
	return result, errs
}

// buildPackage loads the CUE package in dir and returns its value and the
// number of .cue files found beneath dir.
func buildPackage(dir string) (cue.Value, int, *LoadError) {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return cue.Value{}, 0, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("suites directory not found: %s", dir)}
	case err != nil:
		return cue.Value{}, 0, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing suites directory: %v", err)}
	case !info.IsDir():
		return cue.Value{}, 0, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return cue.Value{}, 0, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return cue.Value{}, 0, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, 0, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	if err := instances[0].Err; err != nil {
		return cue.Value{}, 0, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", err)}
	}

	value := cuecontext.New().BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return cue.Value{}, 0, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err), Pos: firstPos(err)}
	}
	return value, len(files), nil
}

// firstPos returns the position of the first CUE error in err, if any.
func firstPos(err error) token.Pos {
	var cueErr cueerrors.Error
	if errors.As(err, &cueErr) {
		return cueErr.Position()
	}
	return token.NoPos
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: fmt.Sprintf("%s: %s: %s", context, compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
// Suite validation codes (E2xx) are defined by the compiler package.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
)

// MapFieldToErrorCode maps a compiler error field to an error code.
// Fields look like "cases", "cases[3].op" or "cases[3].args[1]".
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "cases":
		return compiler.ErrEmptySuite
	case strings.HasSuffix(field, ".op"):
		return compiler.ErrUnknownOp
	case strings.HasSuffix(field, ".args"):
		return compiler.ErrArity
	case strings.Contains(field, ".args["), strings.HasSuffix(field, ".want"):
		return compiler.ErrInvalidLiteral
	default:
		return ErrCodeGeneric
	}
}
