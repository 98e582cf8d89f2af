package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "just plain text", nil},
		{"single", "loving #golang today", []string{"#golang"}},
		{"duplicates preserved", "Loving #ReactJS and #ReactJS today", []string{"#ReactJS", "#ReactJS"}},
		{"order of occurrence", "#b then #a then #c", []string{"#b", "#a", "#c"}},
		{"case preserved", "#GoLang #golang", []string{"#GoLang", "#golang"}},
		{"digits and underscore", "#web3 #snake_case", []string{"#web3", "#snake_case"}},
		{"punctuation terminates", "end#tag, (#wrapped)", []string{"#tag", "#wrapped"}},
		{"bare hash ignored", "# not a tag", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	require.Equal(t, "reactjs", NormalizeTag("#ReactJS"))
	require.Equal(t, "golang", NormalizeTag("golang"))
	require.Equal(t, "go", NormalizeTag("#GO"))
}

func TestHasHashtags(t *testing.T) {
	require.True(t, HasHashtags("check #this out"))
	require.False(t, HasHashtags("nothing here"))
}
