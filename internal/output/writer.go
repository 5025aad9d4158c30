package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"example/describe/internal/model"
)

var unsafeChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// Sanitize turns a source string into a filename-safe slug of at most 100
// characters, truncated on rune boundaries.
func Sanitize(source string) string {
	name := unsafeChars.ReplaceAllString(source, "_")
	if runes := []rune(name); len(runes) > 100 {
		name = string(runes[:100])
	}
	return name
}

// Writer persists every record as an individual JSON file and appends it to
// a JSONL stream, with an optional CSV roll-up at the end of the run.
type Writer struct {
	outDir     string
	jsonlPath  string
	topK       int
	skipRaw    bool
	csvSummary bool
}

func NewWriter(outDir, jsonlPath string, topK int, skipRaw, csvSummary bool) *Writer {
	if topK < 0 {
		topK = 0
	}
	return &Writer{
		outDir:     outDir,
		jsonlPath:  jsonlPath,
		topK:       topK,
		skipRaw:    skipRaw,
		csvSummary: csvSummary,
	}
}

func (w *Writer) Write(rec model.AnalysisRecord) error {
	if !w.skipRaw {
		if err := os.MkdirAll(w.outDir, 0755); err != nil {
			return err
		}
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(w.outDir, Sanitize(rec.Source)+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return w.appendJSONL(rec)
}

func (w *Writer) appendJSONL(rec model.AnalysisRecord) error {
	if err := os.MkdirAll(filepath.Dir(w.jsonlPath), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.jsonlPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

// WriteSummary writes one CSV row per record: source, caption, caption
// confidence, then topK tag-name columns. Failed records keep blank
// caption and tag columns. No-op unless the CSV summary was requested.
func (w *Writer) WriteSummary(records []model.AnalysisRecord) error {
	if !w.csvSummary {
		return nil
	}
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(w.outDir, "results.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{"source", "caption", "caption_confidence"}
	for i := 0; i < w.topK; i++ {
		header = append(header, fmt.Sprintf("tag_%d", i+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(w.summaryRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) summaryRow(rec model.AnalysisRecord) []string {
	row := make([]string, 3+w.topK)
	row[0] = rec.Source
	if !rec.Success {
		return row
	}
	if rec.Caption != nil {
		if rec.Caption.Text != nil {
			row[1] = *rec.Caption.Text
		}
		if rec.Caption.Confidence != nil {
			row[2] = strconv.FormatFloat(*rec.Caption.Confidence, 'f', -1, 64)
		}
	}
	for i, t := range rec.Tags {
		if i >= w.topK {
			break
		}
		row[3+i] = t.Name
	}
	return row
}
