package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single generic domain",
			text: "please check example.com for me",
			want: []string{"example.com"},
		},
		{
			name: "jp domains come first",
			text: "compare example.com and sample.co.jp",
			want: []string{"sample.co.jp", "example.com"},
		},
		{
			name: "japanese text around names",
			text: "ドメインexample.ioとtest.jpを調べて",
			want: []string{"test.jp", "example.io"},
		},
		{
			name: "duplicates collapse in order",
			text: "Example.com, example.com and other.net",
			want: []string{"example.com", "other.net"},
		},
		{
			name: "unsupported tld ignored",
			text: "what about example.xyz",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Extract(tc.text))
		})
	}
}

func TestValidCandidate(t *testing.T) {
	assert.True(t, validCandidate("ab.io"))
	assert.False(t, validCandidate("a.io"))
	assert.False(t, validCandidate("-bad.com"))
	assert.False(t, validCandidate("bad..com"))
	assert.False(t, validCandidate("nodots"))
	assert.False(t, validCandidate("abcd.c"))
}
