// Package captions picks a caption language from video metadata and
// finds the caption files yt-dlp wrote for a video.
package captions

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// LiveChatKey is the pseudo-language yt-dlp uses for live chat replays
const LiveChatKey = "live_chat"

// PreferredLanguage is chosen whenever any variant of it is available
const PreferredLanguage = "en"

// Extensions are the caption file extensions DiscoverFiles matches
var Extensions = []string{".vtt", ".srt"}

// AvailableLanguages returns the sorted union of manual and automatic
// caption languages, without live chat and empty keys
func AvailableLanguages(md *domain.VideoMetadata) []string {
	if md == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, tracks := range []domain.CaptionTrackMap{md.Subtitles, md.AutomaticCaptions} {
		for _, lang := range tracks.Languages() {
			if lang == "" || lang == LiveChatKey {
				continue
			}
			seen[lang] = struct{}{}
		}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ChooseLanguage selects one caption language, or reports false.
//
// English wins when any "en*" track exists: "en" itself, else the
// lexicographically smallest variant. Otherwise original_language, then
// language, is used if a track exists for it.
func ChooseLanguage(md *domain.VideoMetadata) (string, bool) {
	available := AvailableLanguages(md)
	if len(available) == 0 {
		return "", false
	}

	// available is sorted, so the first English variant is the smallest
	var english []string
	for _, lang := range available {
		if strings.HasPrefix(lang, PreferredLanguage) {
			english = append(english, lang)
		}
	}
	if len(english) > 0 {
		for _, lang := range english {
			if lang == PreferredLanguage {
				return lang, true
			}
		}
		return english[0], true
	}

	for _, declared := range []string{md.OriginalLanguage, md.Language} {
		if declared == "" {
			continue
		}
		if contains(available, declared) {
			return declared, true
		}
	}
	return "", false
}

func contains(sorted []string, s string) bool {
	i := sort.SearchStrings(sorted, s)
	return i < len(sorted) && sorted[i] == s
}

// DiscoverFiles lists caption files for id in dir, sorted by name.
// The list is advisory: it matches "<id>." names with a caption
// extension and may include files from earlier runs.
func DiscoverFiles(dir, id string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, id+".") || !isCaptionFile(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func isCaptionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, captionExt := range Extensions {
		if ext == captionExt {
			return true
		}
	}
	return false
}
