package domain

import (
	"encoding/json"
	"fmt"
)

// CaptionTrackMap maps a language code to its track descriptors.
// Only key presence matters for caption selection.
type CaptionTrackMap map[string][]map[string]interface{}

// Languages returns the keys of the map
func (m CaptionTrackMap) Languages() []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	return langs
}

// VideoMetadata is the subset of yt-dlp's -J output this tool reads
type VideoMetadata struct {
	ID                string          `json:"id"`
	Title             string          `json:"title,omitempty"`
	Uploader          string          `json:"uploader,omitempty"`
	Duration          *float64        `json:"duration,omitempty"`
	WebpageURL        string          `json:"webpage_url,omitempty"`
	Language          string          `json:"language,omitempty"`
	OriginalLanguage  string          `json:"original_language,omitempty"`
	Subtitles         CaptionTrackMap `json:"subtitles,omitempty"`
	AutomaticCaptions CaptionTrackMap `json:"automatic_captions,omitempty"`
}

// ParseVideoMetadata parses the JSON text printed by `yt-dlp -J`.
// It only fails when the text is not a JSON object; fields with an
// unexpected type are treated as absent.
func ParseVideoMetadata(raw []byte) (*VideoMetadata, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("failed to parse metadata: not a JSON object")
	}

	md := &VideoMetadata{
		ID:                getStringFromMap(data, "id"),
		Title:             getStringFromMap(data, "title"),
		Uploader:          getStringFromMap(data, "uploader"),
		WebpageURL:        getStringFromMap(data, "webpage_url"),
		Language:          getStringFromMap(data, "language"),
		OriginalLanguage:  getStringFromMap(data, "original_language"),
		Subtitles:         getTrackMap(data, "subtitles"),
		AutomaticCaptions: getTrackMap(data, "automatic_captions"),
	}
	if d, ok := data["duration"].(float64); ok {
		md.Duration = &d
	}
	return md, nil
}

// getStringFromMap safely extracts a string from a map
func getStringFromMap(data map[string]interface{}, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

func getTrackMap(data map[string]interface{}, key string) CaptionTrackMap {
	raw, ok := data[key].(map[string]interface{})
	if !ok {
		return CaptionTrackMap{}
	}
	tracks := make(CaptionTrackMap, len(raw))
	for lang, v := range raw {
		var descriptors []map[string]interface{}
		if list, ok := v.([]interface{}); ok {
			for _, item := range list {
				if desc, ok := item.(map[string]interface{}); ok {
					descriptors = append(descriptors, desc)
				}
			}
		}
		tracks[lang] = descriptors
	}
	return tracks
}
