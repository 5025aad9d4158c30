package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example/describe/internal/model"
)

func TestPrintSuccess(t *testing.T) {
	rec := model.Succeeded("a.jpg",
		&model.Caption{Text: strp("a dog on grass"), Confidence: fp(0.923)},
		[]model.Tag{
			{Name: "dog", Confidence: fp(0.95)},
			{Name: "outdoor"},
		}, nil)

	var buf bytes.Buffer
	NewPresenter(&buf, 5, nil).Print(rec)

	assert.Equal(t, "\n== a.jpg\nCaption: a dog on grass (0.92)\n- dog (0.95)\n- outdoor\n", buf.String())
}

func TestPrintThresholdFilter(t *testing.T) {
	rec := model.Succeeded("a.jpg", &model.Caption{},
		[]model.Tag{
			{Name: "A", Confidence: fp(0.9)},
			{Name: "B", Confidence: fp(0.2)},
			{Name: "C"},
		}, nil)

	var buf bytes.Buffer
	NewPresenter(&buf, 5, fp(0.5)).Print(rec)

	out := buf.String()
	assert.Contains(t, out, "- A (0.90)")
	assert.NotContains(t, out, "- B")
	assert.Contains(t, out, "- C")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("- A")), bytes.Index(buf.Bytes(), []byte("- C")))
}

func TestPrintTopK(t *testing.T) {
	rec := model.Succeeded("a.jpg", &model.Caption{},
		[]model.Tag{
			{Name: "one", Confidence: fp(0.9)},
			{Name: "two", Confidence: fp(0.8)},
			{Name: "three", Confidence: fp(0.7)},
		}, nil)

	var buf bytes.Buffer
	NewPresenter(&buf, 2, nil).Print(rec)

	assert.Contains(t, buf.String(), "- one")
	assert.Contains(t, buf.String(), "- two")
	assert.NotContains(t, buf.String(), "- three")
}

func TestPrintNegativeTopK(t *testing.T) {
	rec := model.Succeeded("a.jpg", &model.Caption{Text: strp("a dog")},
		[]model.Tag{{Name: "dog", Confidence: fp(0.95)}}, nil)

	var buf bytes.Buffer
	NewPresenter(&buf, -1, nil).Print(rec)

	assert.Equal(t, "\n== a.jpg\nCaption: a dog\n", buf.String())
}

func TestPrintError(t *testing.T) {
	rec := model.Failed("http://x/a.png", "ResolutionError: URL did not resolve to a valid image: http://x/a.png")

	var buf bytes.Buffer
	NewPresenter(&buf, 5, nil).Print(rec)

	assert.Equal(t, "\n== http://x/a.png\nERROR: ResolutionError: URL did not resolve to a valid image: http://x/a.png\n", buf.String())
}

func TestFilterTags(t *testing.T) {
	tags := []model.Tag{
		{Name: "A", Confidence: fp(0.9)},
		{Name: "B", Confidence: fp(0.2)},
		{Name: "C"},
	}

	kept := FilterTags(tags, fp(0.5))
	require.Len(t, kept, 2)
	assert.Equal(t, "A", kept[0].Name)
	assert.Equal(t, "C", kept[1].Name)

	// no threshold keeps everything
	assert.Len(t, FilterTags(tags, nil), 3)
}
