package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_NodeDocument(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(NodeDocument, `{"title":"Java","content":"JVM","tags":["Java"]}`))
	assert.NoError(t, v.Validate(NodeDocument, `{"title":"Only title"}`))

	err := v.Validate(NodeDocument, `{"content":"no title"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")

	err = v.Validate(NodeDocument, `{"title":"t","tags":"java"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")

	assert.Error(t, v.Validate(NodeDocument, `{"title":"t","extra":1}`))
}

func TestValidate_StringSchema(t *testing.T) {
	v := NewValidator()
	schema := `{"type":"object","required":["name"]}`

	assert.NoError(t, v.Validate(schema, `{"name":"x"}`))
	assert.Error(t, v.Validate(schema, `{}`))
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()
	_ = v.Validate(NodeDocument, `{"title":"a"}`)
	_ = v.Validate(NodeDocument, `{"title":"b"}`)

	count := 0
	v.cache.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestValidateValue(t *testing.T) {
	v := NewValidator()
	doc := map[string]any{"title": "t", "tags": []string{"a"}}

	assert.NoError(t, v.ValidateValue(NodeDocument, doc))
	assert.Error(t, v.ValidateValue(NodeDocument, map[string]any{"title": 3}))
}

func TestDumpErrors_Truncates(t *testing.T) {
	out := dumpErrors([]string{"a", "b", "c", "d", "e"})
	assert.Equal(t, "a\n- b\n- c... and 2 more", out)
}
