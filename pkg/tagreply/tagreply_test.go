package tagreply

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taggen/internal/models"
)

func TestExtractObject_CleanJSON(t *testing.T) {
	obj, err := ExtractObject(`{"tags":["diagram"],"topics":["databases"]}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"diagram"}, NormalizeList(obj["tags"]))
	assert.Equal(t, []string{"databases"}, NormalizeList(obj["topics"]))
}

func TestExtractObject_ProseWrapped(t *testing.T) {
	reply := `Sure! Here you go: {"tags":["diagram"],"topics":["databases"]} Hope that helps.`

	obj, err := ExtractObject(reply)
	require.NoError(t, err, "fallback brace extraction should handle surrounding prose")

	result := BuildResult(obj)
	assert.Equal(t, []string{"diagram"}, result.Tags)
	assert.Equal(t, []string{"databases"}, result.Topics)
}

func TestExtractObject_NestedBracesWithProse(t *testing.T) {
	// A non-greedy match would stop at the first '}' inside "suggested" and
	// fail to parse; the widest span must be taken.
	reply := `Here is the result: {"tags":["photo"],"suggested":{"rename":"a.png","reason":"ok","confidence":0.5}} done.`

	obj, err := ExtractObject(reply)
	require.NoError(t, err)

	result := BuildResult(obj)
	assert.Equal(t, []string{"photo"}, result.Tags)
	require.NotNil(t, result.Suggested)
	assert.Equal(t, "a.png", result.Suggested.Rename)
	assert.Equal(t, 0.5, result.Suggested.Confidence)
}

func TestExtractObject_NoJSON(t *testing.T) {
	_, err := ExtractObject("I cannot help with that.")
	require.Error(t, err)

	var malformed *models.MalformedReplyError
	assert.True(t, errors.As(err, &malformed), "expected MalformedReplyError, got %T", err)
}

func TestExtractObject_UnparseableSpan(t *testing.T) {
	_, err := ExtractObject("this {is not json} at all")
	require.Error(t, err)

	var malformed *models.MalformedReplyError
	assert.True(t, errors.As(err, &malformed))
}

func TestNormalizeList(t *testing.T) {
	in := []interface{}{"  Photo ", "photo", "PHOTO", 42, nil, "  ", "Diagram", true, "photo"}

	out := NormalizeList(in)

	assert.Equal(t, []string{"photo", "diagram"}, out,
		"expected lowercase, trimmed, deduped, first-occurrence order")
}

func TestNormalizeList_NonList(t *testing.T) {
	assert.Empty(t, NormalizeList("not a list"))
	assert.Empty(t, NormalizeList(map[string]interface{}{"a": 1}))
	assert.Empty(t, NormalizeList(nil))
}

func TestBuildResult_StringConfidence(t *testing.T) {
	obj, err := ExtractObject(`{"tags":["Photo"," photo "],"topics":[],"raw_keywords":[],"suggested":{"rename":"x.png","reason":"ok","confidence":"0.9"}}`)
	require.NoError(t, err)

	result := BuildResult(obj)

	assert.Equal(t, []string{"photo"}, result.Tags)
	assert.Empty(t, result.Topics)
	assert.Empty(t, result.RawKeywords)
	require.NotNil(t, result.Suggested)
	assert.Equal(t, 0.9, result.Suggested.Confidence, "numeric string must coerce to float")
}

func TestBuildResult_NonNumericConfidence(t *testing.T) {
	obj := map[string]interface{}{
		"suggested": map[string]interface{}{"rename": "x", "reason": "y", "confidence": "high"},
	}

	result := BuildResult(obj)

	require.NotNil(t, result.Suggested)
	assert.Equal(t, 0.0, result.Suggested.Confidence, "non-numeric confidence must degrade to 0")
}

func TestBuildResult_SuggestedWrongShape(t *testing.T) {
	result := BuildResult(map[string]interface{}{"suggested": "a plain string"})
	assert.Nil(t, result.Suggested)

	result = BuildResult(map[string]interface{}{"tags": "not-a-list"})
	assert.Empty(t, result.Tags)
	assert.Nil(t, result.Suggested)
}

func TestBuildResult_Truncation(t *testing.T) {
	obj := map[string]interface{}{
		"suggested": map[string]interface{}{
			"rename":     strings.Repeat("a", 200),
			"reason":     strings.Repeat("b", 200),
			"confidence": 1.0,
		},
	}

	result := BuildResult(obj)

	require.NotNil(t, result.Suggested)
	assert.Len(t, result.Suggested.Rename, MaxRenameLen)
	assert.Len(t, result.Suggested.Reason, MaxReasonLen)
}

func TestBuildResult_MissingFields(t *testing.T) {
	result := BuildResult(map[string]interface{}{})

	assert.Empty(t, result.Tags)
	assert.Empty(t, result.Topics)
	assert.Empty(t, result.RawKeywords)
	assert.Nil(t, result.Suggested)
}
