package trivia

import (
	"slices"
	"testing"
)

func TestStripPunctuation(t *testing.T) {
	tc := []struct {
		name string
		text string
		want string
	}{
		{
			name: "punctuation removed",
			text: "Hello, World!",
			want: "Hello World",
		},
		{
			name: "symbols removed",
			text: "AC/DC + friends = $$$",
			want: "ACDC  friends  ",
		},
		{
			name: "plain text untouched",
			text: "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := StripPunctuation(tt.text)
			if got != tt.want {
				t.Errorf("StripPunctuation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsStopWord(t *testing.T) {
	for _, word := range []string{"the", "The", "THE", "and", "of"} {
		if !IsStopWord(word) {
			t.Errorf("expected %q to be a stop word", word)
		}
	}
	for _, word := range []string{"beatles", "zeppelin", ""} {
		if IsStopWord(word) {
			t.Errorf("expected %q not to be a stop word", word)
		}
	}
}

func TestFilterStopWords(t *testing.T) {
	var got []string
	for word := range FilterStopWords("The Rise and Fall of Ziggy Stardust!") {
		got = append(got, word)
	}

	want := []string{"Rise", "Fall", "Ziggy", "Stardust"}
	if !slices.Equal(got, want) {
		t.Errorf("FilterStopWords() = %v, want %v", got, want)
	}

	t.Run("restartable", func(t *testing.T) {
		seq := FilterStopWords("one and two")
		var first, second []string
		for w := range seq {
			first = append(first, w)
		}
		for w := range seq {
			second = append(second, w)
		}
		if !slices.Equal(first, second) {
			t.Errorf("expected restartable sequence, got %v then %v", first, second)
		}
	})
}
