package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example/describe/internal/output"
	"example/describe/internal/vision"
)

func TestProcessorRun(t *testing.T) {
	// first source fails terminally, second succeeds
	client := &fakeClient{failUntil: 1, err: &vision.ServiceError{Status: 404}}
	analyzer, _ := newTestAnalyzer(client, &fakeResolver{})

	dir := t.TempDir()
	jsonlPath := filepath.Join(dir, "results.jsonl")
	writer := output.NewWriter(dir, jsonlPath, 5, false, true)
	var buf bytes.Buffer
	presenter := output.NewPresenter(&buf, 5, nil)

	p := NewProcessor(analyzer, presenter, writer)
	err := p.Run(context.Background(), []string{"bad.jpg", "good.jpg"})
	require.NoError(t, err, "item failures must not fail the run")

	data, err := os.ReadFile(jsonlPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)

	assert.Contains(t, buf.String(), "== bad.jpg")
	assert.Contains(t, buf.String(), "ERROR: ServiceError")
	assert.Contains(t, buf.String(), "== good.jpg")

	// CSV roll-up covers both records
	csvData, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csvData)), "\n"), 3)
}
