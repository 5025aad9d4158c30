package model

import "sort"

// Caption is the generated description of an image.
type Caption struct {
	Text       *string  `json:"text"`
	Confidence *float64 `json:"confidence"`
}

// Tag is a single content label with an optional confidence score.
type Tag struct {
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence"`
}

// AnalysisRecord is the normalized outcome of processing one source. A
// record is always one of two shapes: success with caption and tags, or
// failure with an error string, empty tags, null caption and null raw.
type AnalysisRecord struct {
	Source  string         `json:"source"`
	Success bool           `json:"success"`
	Error   *string        `json:"error"`
	Caption *Caption       `json:"caption"`
	Tags    []Tag          `json:"tags"`
	Raw     map[string]any `json:"raw"`
}

func Succeeded(source string, caption *Caption, tags []Tag, raw map[string]any) AnalysisRecord {
	if caption == nil {
		caption = &Caption{}
	}
	if tags == nil {
		tags = []Tag{}
	}
	return AnalysisRecord{
		Source:  source,
		Success: true,
		Caption: caption,
		Tags:    tags,
		Raw:     raw,
	}
}

func Failed(source, message string) AnalysisRecord {
	return AnalysisRecord{
		Source: source,
		Error:  &message,
		Tags:   []Tag{},
	}
}

// SortTags orders tags by descending confidence. Entries without a
// confidence go after all scored ones, keeping their original order.
func SortTags(tags []Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		a, b := tags[i].Confidence, tags[j].Confidence
		switch {
		case a != nil && b == nil:
			return true
		case a == nil || b == nil:
			return false
		default:
			return *a > *b
		}
	})
}
