// Package store persists statement extractions between the parse and plans
// steps.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/emi-tracker/internal/fileutils"
	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
	"fjacquet/emi-tracker/internal/parsererror"
	"fjacquet/emi-tracker/internal/validation"

	"gopkg.in/yaml.v3"
)

// MissingInputHint tells the operator how to produce the extraction file.
const MissingInputHint = "run 'emi-tracker parse' first to extract statements"

// Document is the extraction artifact: statements in chronological order.
type Document struct {
	Statements []models.StatementExtraction `json:"statements"`
}

// Merge replaces statements whose filename is already present and adds new
// ones, then restores chronological order. Statements with the same period
// start keep their store position.
func (d *Document) Merge(statements []models.StatementExtraction) (replaced, added int) {
	index := make(map[string]int, len(d.Statements))
	for i, st := range d.Statements {
		index[st.Filename] = i
	}
	for _, st := range statements {
		if i, ok := index[st.Filename]; ok {
			d.Statements[i] = st
			replaced++
			continue
		}
		index[st.Filename] = len(d.Statements)
		d.Statements = append(d.Statements, st)
		added++
	}
	models.SortStatementsChronologically(d.Statements)
	d.Renumber()
	return replaced, added
}

// Renumber assigns Seq 1..n across all transactions in document order.
func (d *Document) Renumber() {
	seq := 0
	for i := range d.Statements {
		for j := range d.Statements[i].Transactions {
			seq++
			d.Statements[i].Transactions[j].Seq = seq
		}
	}
}

// TransactionCount returns the number of transactions across all statements.
func (d *Document) TransactionCount() int {
	n := 0
	for _, st := range d.Statements {
		n += len(st.Transactions)
	}
	return n
}

// Repository loads and saves extraction documents.
type Repository interface {
	Load() (*Document, error)
	Save(doc *Document) error
}

// ExtractionStore is a file-backed Repository. The format follows the file
// extension: ".yaml"/".yml" for YAML, JSON otherwise.
type ExtractionStore struct {
	Path   string
	logger logging.Logger
}

// NewExtractionStore creates a store for path.
func NewExtractionStore(path string, logger logging.Logger) *ExtractionStore {
	return &ExtractionStore{Path: path, logger: logger}
}

func (s *ExtractionStore) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.Path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the document. A missing file is a *parsererror.MissingInputError.
func (s *ExtractionStore) Load() (*Document, error) {
	data, err := os.ReadFile(s.Path) // #nosec G304 -- path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &parsererror.MissingInputError{FilePath: s.Path, Hint: MissingInputHint}
		}
		return nil, fmt.Errorf("error reading extraction file: %w", err)
	}

	doc := &Document{}
	if s.isYAML() {
		var raw yamlDocument
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, invalidFormat(s.Path, "YAML extraction document", err)
		}
		doc, err = raw.toDocument()
		if err != nil {
			return nil, invalidFormat(s.Path, "YAML extraction document", err)
		}
	} else if err := json.Unmarshal(data, doc); err != nil {
		return nil, invalidFormat(s.Path, "JSON extraction document", err)
	}

	if info, statErr := os.Stat(s.Path); statErr == nil {
		if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
			s.logger.Warn("Extraction file is readable by other users",
				logging.F(logging.FieldInputFile, s.Path),
				logging.F(logging.FieldReason, err.Error()))
		}
	}

	doc.Renumber()
	s.logger.Debug("Loaded extraction document",
		logging.F(logging.FieldInputFile, s.Path),
		logging.F("statements", len(doc.Statements)),
		logging.F(logging.FieldCount, doc.TransactionCount()))
	return doc, nil
}

// LoadOrEmpty behaves like Load but returns an empty document when the file
// does not exist yet.
func (s *ExtractionStore) LoadOrEmpty() (*Document, error) {
	doc, err := s.Load()
	if parsererror.IsMissingInput(err) {
		return &Document{}, nil
	}
	return doc, err
}

// Save writes doc, creating the parent directory when needed.
func (s *ExtractionStore) Save(doc *Document) error {
	if doc.Statements == nil {
		doc.Statements = []models.StatementExtraction{}
	}

	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(newYAMLDocument(doc))
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error encoding extraction document: %w", err)
	}

	if err := fileutils.WriteFile(s.Path, data, models.PermissionStoreFile); err != nil {
		return fmt.Errorf("error writing extraction file: %w", err)
	}

	s.logger.Info("Saved extraction document",
		logging.F(logging.FieldOutputFile, s.Path),
		logging.F("statements", len(doc.Statements)))
	return nil
}

// MergeAndSave merges statements into the stored document and saves it.
func (s *ExtractionStore) MergeAndSave(statements []models.StatementExtraction) (*Document, error) {
	doc, err := s.LoadOrEmpty()
	if err != nil {
		return nil, err
	}
	replaced, added := doc.Merge(statements)
	s.logger.Debug("Merged statements",
		logging.F("replaced", replaced),
		logging.F("added", added))
	return doc, s.Save(doc)
}

func invalidFormat(path, expected string, err error) error {
	return &parsererror.InvalidFormatError{
		FilePath:       path,
		ExpectedFormat: expected,
		Msg:            err.Error(),
	}
}
