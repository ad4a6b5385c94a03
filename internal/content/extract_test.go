package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single tag", "hello #gym", []string{"gym"}},
		{"multiple tags", "#go #backend #go_dev", []string{"go", "backend", "go_dev"}},
		{"case folded and deduplicated", "#Gym and #GYM again", []string{"gym"}},
		{"order preserved", "#zeta then #alpha", []string{"zeta", "alpha"}},
		{"bare hash ignored", "just a # sign", nil},
		{"empty text", "", nil},
		{"no tags", "nothing to see here", nil},
		{"punctuation terminates token", "#gym! #run.", []string{"gym", "run"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExtractHashtags(tc.text))
		})
	}
}

func TestExtractMentions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single mention", "hello @bob", []string{"bob"}},
		{"multiple mentions", "@alice meet @bob", []string{"alice", "bob"}},
		{"case folded and deduplicated", "@Bob and @bob", []string{"bob"}},
		{"underscores kept", "ping @the_bob", []string{"the_bob"}},
		{"empty text", "", nil},
		{"bare at ignored", "mail me @ home", nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExtractMentions(tc.text))
		})
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tags, mentions := Extract("hello #gym @bob")
	assert.Equal(t, []string{"gym"}, tags)
	assert.Equal(t, []string{"bob"}, mentions)
}
