package vision

import "example/describe/internal/model"

// Normalize flattens a service response into caption + tags. The response
// shape varies across service versions, so every field is probed through an
// ordered list of candidates; the first one present wins and a missing
// field becomes null rather than an error.
func Normalize(raw map[string]any) *Analysis {
	return &Analysis{
		Caption: extractCaption(raw),
		Tags:    extractTags(raw),
		Raw:     raw,
	}
}

func extractCaption(raw map[string]any) *model.Caption {
	c := &model.Caption{}
	obj, ok := firstMap(raw, "captionResult", "caption")
	if !ok {
		return c
	}
	c.Text = firstString(obj, "text", "content")
	c.Confidence = firstNumber(obj, "confidence")
	return c
}

func extractTags(raw map[string]any) []model.Tag {
	tags := []model.Tag{}
	for _, entry := range tagEntries(raw) {
		t, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(t, "name", "text")
		if name == nil {
			continue
		}
		tags = append(tags, model.Tag{
			Name:       *name,
			Confidence: firstNumber(t, "confidence", "score"),
		})
	}
	model.SortTags(tags)
	return tags
}

// tagEntries locates the tag collection, which may arrive as an object
// holding a "values" array, an object holding a "list" array, or a plain
// array.
func tagEntries(raw map[string]any) []any {
	for _, key := range []string{"tagsResult", "tags"} {
		obj, ok := raw[key]
		if !ok || obj == nil {
			continue
		}
		switch v := obj.(type) {
		case map[string]any:
			if vals, ok := v["values"].([]any); ok {
				return vals
			}
			if vals, ok := v["list"].([]any); ok {
				return vals
			}
		case []any:
			return v
		}
	}
	return nil
}

func firstMap(obj map[string]any, keys ...string) (map[string]any, bool) {
	for _, k := range keys {
		if m, ok := obj[k].(map[string]any); ok {
			return m, true
		}
	}
	return nil, false
}

func firstString(obj map[string]any, keys ...string) *string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

func firstNumber(obj map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		if f, ok := obj[k].(float64); ok {
			return &f
		}
	}
	return nil
}
