package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoMetadata(t *testing.T) {
	raw := []byte(`{
		"id": "abc123",
		"title": "A video",
		"uploader": "someone",
		"duration": 61.5,
		"webpage_url": "https://www.youtube.com/watch?v=abc123",
		"language": "es",
		"subtitles": {"en": [{"ext": "vtt"}]},
		"automatic_captions": {"es": [{"ext": "vtt"}, {"ext": "srv1"}]},
		"formats": [{"format_id": "18"}]
	}`)

	md, err := ParseVideoMetadata(raw)
	require.NoError(t, err)

	assert.Equal(t, "abc123", md.ID)
	assert.Equal(t, "A video", md.Title)
	assert.Equal(t, "someone", md.Uploader)
	require.NotNil(t, md.Duration)
	assert.Equal(t, 61.5, *md.Duration)
	assert.Equal(t, "es", md.Language)
	assert.Empty(t, md.OriginalLanguage)
	assert.Contains(t, md.Subtitles, "en")
	assert.Len(t, md.AutomaticCaptions["es"], 2)
}

func TestParseVideoMetadata_WrongTypesAreAbsent(t *testing.T) {
	raw := []byte(`{"id": 42, "language": 7, "subtitles": ["en"], "automatic_captions": null, "duration": "long"}`)

	md, err := ParseVideoMetadata(raw)
	require.NoError(t, err)

	assert.Empty(t, md.ID)
	assert.Empty(t, md.Language)
	assert.Empty(t, md.Subtitles)
	assert.Empty(t, md.AutomaticCaptions)
	assert.Nil(t, md.Duration)
}

func TestParseVideoMetadata_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"truncated", `{"id": "abc`},
		{"array", `[1, 2, 3]`},
		{"null", `null`},
		{"warning text", "WARNING: something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVideoMetadata([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestCommand_Clone(t *testing.T) {
	cmd := Command{"yt-dlp", "-J", "u"}
	clone := cmd.Clone()
	clone[1] = "--changed"

	assert.Equal(t, "-J", cmd[1])
	assert.Equal(t, "yt-dlp", cmd.Program())
	assert.Equal(t, []string{"-J", "u"}, cmd.Args())
	assert.Nil(t, Command(nil).Clone())
	assert.Empty(t, Command{}.Program())
}

func TestCaptionTrackMap_Languages(t *testing.T) {
	m := CaptionTrackMap{"en": nil, "de": {{"ext": "vtt"}}}
	assert.ElementsMatch(t, []string{"en", "de"}, m.Languages())
	assert.Empty(t, CaptionTrackMap(nil).Languages())
}
