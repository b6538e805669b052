package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

// stdinName labels input read from standard input.
const stdinName = "<stdin>"

// readInput reads the file named by args, or standard input when args is
// empty or "-".
func readInput(args []string, stdin io.Reader) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(io.LimitReader(stdin, pipeline.MaxInputSize+1))
		if err != nil {
			return nil, stdinName, errors.Wrap(errors.ErrCodeInvalidInput, err, "read standard input")
		}
		return data, stdinName, nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, path, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s not found", path)
		}
		return nil, path, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, path, nil
}

// detectFormat picks the input format for name when none was given.
func detectFormat(name, flag string) string {
	if flag != "" {
		return flag
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return errors.FormatJSON
	}
	return errors.FormatDOT
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

// toStdout reports whether path selects standard output.
func toStdout(path string) bool { return path == "" || path == "-" }
