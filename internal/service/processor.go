package service

import (
	"context"

	"github.com/apex/log"

	"example/describe/internal/model"
	"example/describe/internal/output"
)

// Processor drives the run: exactly one source in flight at a time, each
// result printed and persisted before the next request starts.
type Processor struct {
	analyzer  *Analyzer
	presenter *output.Presenter
	writer    *output.Writer
}

func NewProcessor(analyzer *Analyzer, presenter *output.Presenter, writer *output.Writer) *Processor {
	return &Processor{
		analyzer:  analyzer,
		presenter: presenter,
		writer:    writer,
	}
}

// Run processes every source in order. Item failures are captured in their
// records; only output I/O errors abort the run.
func (p *Processor) Run(ctx context.Context, sources []string) error {
	records := make([]model.AnalysisRecord, 0, len(sources))
	succeeded := 0

	for i, src := range sources {
		log.WithField("source", src).Infof("analyzing %d/%d", i+1, len(sources))
		rec := p.analyzer.AnalyzeSource(ctx, src)
		p.presenter.Print(rec)
		if err := p.writer.Write(rec); err != nil {
			return err
		}
		if rec.Success {
			succeeded++
		}
		records = append(records, rec)
	}

	if err := p.writer.WriteSummary(records); err != nil {
		return err
	}
	log.Infof("done: %d/%d succeeded", succeeded, len(sources))
	return nil
}
