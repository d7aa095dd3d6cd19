package formeval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const formExt = ".json"

// CompareFromPaths loads two JSON forms from disk and compares them.
// Both paths must end in .json.
func (e *Evaluator) CompareFromPaths(goldPath, predictedPath string) error {
	if !strings.HasSuffix(goldPath, formExt) || !strings.HasSuffix(predictedPath, formExt) {
		return &InvalidInputError{
			GoldPath:      goldPath,
			PredictedPath: predictedPath,
			Reason:        "only JSON files are supported",
		}
	}

	gold, err := LoadForm(goldPath)
	if err != nil {
		return err
	}
	goldObj, ok := gold.(map[string]any)
	if !ok {
		return &InvalidInputError{
			GoldPath:      goldPath,
			PredictedPath: predictedPath,
			Reason:        "gold form must be a JSON object",
		}
	}

	predicted, err := LoadForm(predictedPath)
	if err != nil {
		return err
	}

	e.Compare(goldObj, asObject(predicted))
	e.pairs++
	e.logger.Debug("compared forms", "gold", goldPath, "predicted", predictedPath)
	return nil
}

// CompareFromDirs compares every *.json file in goldDir with the file of the
// same name in predictedDir. A missing predicted file fails when it is
// opened.
//
// By default the first failing pair stops the run. With continue-on-error
// enabled all pairs are attempted and a *DirectoryError lists the failures.
func (e *Evaluator) CompareFromDirs(goldDir, predictedDir string) error {
	goldFiles, err := ListForms(goldDir)
	if err != nil {
		return err
	}

	var failures []PairFailure
	for _, goldFile := range goldFiles {
		predictedFile := filepath.Join(predictedDir, filepath.Base(goldFile))
		if err := e.CompareFromPaths(goldFile, predictedFile); err != nil {
			if !e.continueOnError {
				return err
			}
			e.logger.Warn("skipping form pair", "gold", goldFile, "predicted", predictedFile, "error", err)
			failures = append(failures, PairFailure{
				GoldPath:      goldFile,
				PredictedPath: predictedFile,
				Err:           err,
			})
		}
	}

	if len(failures) > 0 {
		return &DirectoryError{Failures: failures}
	}
	return nil
}

// ListForms returns the *.json files directly inside dir in sorted order.
func ListForms(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	// ReadDir returns entries sorted by filename. Hidden files are skipped
	// the same way a *.json shell glob skips them.
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, formExt) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// LoadForm reads and decodes one JSON document.
// Numbers are kept as json.Number so that large integers survive intact.
func LoadForm(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}

	v, err := decodeForm(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return v, nil
}

// errTrailingData reports content after the first JSON value.
var errTrailingData = errors.New("invalid character after top-level value")

func decodeForm(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}
