package output

import (
	"fmt"
	"io"

	"example/describe/internal/model"
)

// Presenter prints a human-readable caption + top-K tag summary per item.
type Presenter struct {
	out       io.Writer
	topK      int
	threshold *float64
}

func NewPresenter(out io.Writer, topK int, threshold *float64) *Presenter {
	if topK < 0 {
		topK = 0
	}
	return &Presenter{out: out, topK: topK, threshold: threshold}
}

func (p *Presenter) Print(rec model.AnalysisRecord) {
	fmt.Fprintf(p.out, "\n== %s\n", rec.Source)
	if !rec.Success {
		msg := ""
		if rec.Error != nil {
			msg = *rec.Error
		}
		fmt.Fprintf(p.out, "ERROR: %s\n", msg)
		return
	}
	if rec.Caption != nil && rec.Caption.Text != nil {
		fmt.Fprintf(p.out, "Caption: %s%s\n", *rec.Caption.Text, confSuffix(rec.Caption.Confidence))
	}
	tags := FilterTags(rec.Tags, p.threshold)
	if len(tags) > p.topK {
		tags = tags[:p.topK]
	}
	for _, t := range tags {
		fmt.Fprintf(p.out, "- %s%s\n", t.Name, confSuffix(t.Confidence))
	}
}

// FilterTags drops tags whose confidence is known and below threshold.
// Unscored tags always pass.
func FilterTags(tags []model.Tag, threshold *float64) []model.Tag {
	if threshold == nil {
		return tags
	}
	kept := make([]model.Tag, 0, len(tags))
	for _, t := range tags {
		if t.Confidence == nil || *t.Confidence >= *threshold {
			kept = append(kept, t)
		}
	}
	return kept
}

func confSuffix(conf *float64) string {
	if conf == nil {
		return ""
	}
	return fmt.Sprintf(" (%.2f)", *conf)
}
