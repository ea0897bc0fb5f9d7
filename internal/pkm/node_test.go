package pkm

import (
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

// utf16Len reports the length of s in UTF-16 code units.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func TestSummary_TruncatesLongContent(t *testing.T) {
	node := NewNode("Test", strings.Repeat("A", 60), []string{"tag1"})
	summary := node.Summary()

	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.Len(t, summary, 53)
	assert.Equal(t, strings.Repeat("A", 50)+"...", summary)
}

func TestSummary_Boundary(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", ""},
		{"short", "Content", "Content"},
		{"exactly limit", strings.Repeat("b", 50), strings.Repeat("b", 50)},
		{"one over", strings.Repeat("c", 51), strings.Repeat("c", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewNode("t", tt.content, nil).Summary())
		})
	}
}

func TestSummary_CountsUTF16Units(t *testing.T) {
	// 50 two-byte runes are 50 code units: no truncation despite 100 bytes.
	accented := strings.Repeat("é", 50)
	assert.Equal(t, accented, Summarize(accented))

	// Each emoji is a surrogate pair, so 25 of them fill the limit exactly.
	emoji := strings.Repeat("😀", 25)
	assert.Equal(t, emoji, Summarize(emoji))

	long := strings.Repeat("😀", 26)
	got := Summarize(long)
	assert.Equal(t, emoji+"...", got)
	assert.Equal(t, 53, utf16Len(got))
}

func TestSummary_SplitSurrogateKeepsLength(t *testing.T) {
	content := strings.Repeat("a", 49) + "😀" + "tail"
	got := Summarize(content)

	assert.Equal(t, 53, utf16Len(got))
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", 49)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCombine_ConcatenatesContent(t *testing.T) {
	first := NewNode("Combined", "First. ", []string{"merge"})
	second := NewNode("Combined", "Second.", []string{"merge"})

	combined := first.Combine(second)

	assert.Contains(t, combined.Content(), "First. ")
	assert.Contains(t, combined.Content(), "Second.")
	assert.Less(t, strings.Index(combined.Content(), "First. "), strings.Index(combined.Content(), "Second."))
	assert.Equal(t, "First. Second.", combined.Content())
}

func TestCombine_KeepsReceiverTitleAndTags(t *testing.T) {
	a := NewNode("A", "alpha", []string{"x", "y"})
	b := NewNode("B", "beta", []string{"z"})

	combined := a.Combine(b)

	assert.Equal(t, "A", combined.Title())
	assert.Equal(t, []string{"x", "y"}, combined.Tags())
	assert.Equal(t, "alpha", a.Content(), "receiver must not change")
	assert.Equal(t, "beta", b.Content(), "argument must not change")
}

func TestNode_TagsAreCopied(t *testing.T) {
	tags := []string{"go", "notes"}
	node := NewNode("t", "c", tags)

	tags[0] = "mutated"
	assert.Equal(t, []string{"go", "notes"}, node.Tags())

	got := node.Tags()
	got[1] = "mutated"
	assert.Equal(t, []string{"go", "notes"}, node.Tags())
}

func TestNode_NilTags(t *testing.T) {
	node := NewNode("t", "c", nil)
	assert.NotNil(t, node.Tags())
	assert.Empty(t, node.Tags())
}
