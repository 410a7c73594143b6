package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-go/internal/domain"
)

var testLauncher = Launcher{"yt-dlp"}

func indexOf(cmd domain.Command, tok string) int {
	for i, c := range cmd {
		if c == tok {
			return i
		}
	}
	return -1
}

func TestBuildDownload_Basic(t *testing.T) {
	cmd := BuildDownload(testLauncher, "https://example.com/video", DownloadOptions{IncludePlaylist: true})

	assert.Contains(t, cmd, "-o")
	assert.Equal(t, "https://example.com/video", cmd[len(cmd)-1])
	assert.Contains(t, cmd, "--merge-output-format")
	assert.Contains(t, cmd, "mp4")
	assert.Contains(t, cmd, "--restrict-filenames")
	assert.Contains(t, cmd, "--write-info-json")
	assert.NotContains(t, cmd, "--no-playlist")
	assert.NotContains(t, cmd, "-x")

	o := indexOf(cmd, "-o")
	require.Greater(t, o, 0)
	assert.Equal(t, domain.DefaultOutputName, cmd[o+1])
}

func TestBuildDownload_ExactOrder(t *testing.T) {
	cmd := BuildDownload(Launcher{"python3", "-m", "yt_dlp"}, "u", DownloadOptions{
		OutputTemplate: "out/%(id)s.%(ext)s",
		ExtraArgs:      []string{"--cookies", "c.txt"},
	})

	expected := domain.Command{
		"python3", "-m", "yt_dlp",
		"--no-progress", "--newline",
		"--restrict-filenames", "--write-info-json",
		"-o", "out/%(id)s.%(ext)s",
		"--no-playlist",
		"-f", "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/bv*+ba/b",
		"--merge-output-format", "mp4",
		"--cookies", "c.txt",
		"u",
	}
	if diff := cmp.Diff(expected, cmd); diff != "" {
		t.Errorf("download argv mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDownload_AudioOnly(t *testing.T) {
	cmd := BuildDownload(testLauncher, "u", DownloadOptions{AudioOnly: true, IncludePlaylist: true})

	assert.Contains(t, cmd, "-x")
	assert.Contains(t, cmd, "bestaudio/best")
	assert.NotContains(t, cmd, "--merge-output-format")

	f := indexOf(cmd, "-f")
	require.Greater(t, f, 0)
	assert.Equal(t, "bestaudio/best", cmd[f+1])
	assert.Equal(t, "-x", cmd[f+2])
	assert.Equal(t, "u", cmd[len(cmd)-1])
}

func TestBuildDownload_Playlist(t *testing.T) {
	assert.Contains(t, BuildDownload(testLauncher, "u", DownloadOptions{IncludePlaylist: false}), "--no-playlist")
	assert.NotContains(t, BuildDownload(testLauncher, "u", DownloadOptions{IncludePlaylist: true}), "--no-playlist")
}

func TestBuildDownload_ExtraArgsBeforeURL(t *testing.T) {
	cmd := BuildDownload(testLauncher, "u", DownloadOptions{ExtraArgs: []string{"--limit-rate", "1M"}})

	n := len(cmd)
	assert.Equal(t, domain.Command{"--limit-rate", "1M", "u"}, cmd[n-3:])
}

func TestBuildInfo(t *testing.T) {
	assert.Equal(t, domain.Command{"yt-dlp", "-J", "u"}, BuildInfo(testLauncher, "u"))
}

func TestBuildCaptions(t *testing.T) {
	cmd := BuildCaptions(testLauncher, "u", "out/%(id)s.%(ext)s", "en-GB")

	expected := domain.Command{
		"yt-dlp",
		"--no-progress", "--newline",
		"--restrict-filenames",
		"--skip-download",
		"--write-subs", "--write-auto-subs",
		"--sub-langs", "en-GB",
		"--sub-format", "vtt",
		"-o", "out/%(id)s.%(ext)s",
		"--no-playlist",
		"u",
	}
	assert.Equal(t, expected, cmd)
}

func TestBuildAudioExtract(t *testing.T) {
	cmd := BuildAudioExtract("ffmpeg", "in.mp4", "out.opus", "64k")

	assert.Equal(t, "ffmpeg", cmd[0])
	assert.Contains(t, cmd, "-vn")
	assert.Contains(t, cmd, "libopus")
	assert.Contains(t, cmd, "64k")
	assert.Equal(t, "out.opus", cmd[len(cmd)-1])
	assert.Equal(t, domain.Command{"ffmpeg", "-y", "-i", "in.mp4", "-vn", "-c:a", "libopus", "-b:a", "64k", "out.opus"}, cmd)
}

func TestBuildAudioExtract_Defaults(t *testing.T) {
	cmd := BuildAudioExtract("", "in.mp4", "out.opus", "")

	assert.Equal(t, "ffmpeg", cmd[0])
	b := indexOf(cmd, "-b:a")
	require.Greater(t, b, 0)
	assert.Equal(t, "96k", cmd[b+1])
}

func TestBuilders_Idempotent(t *testing.T) {
	opts := DownloadOptions{OutputTemplate: "t", ExtraArgs: []string{"--x"}}

	assert.Equal(t, BuildDownload(testLauncher, "u", opts), BuildDownload(testLauncher, "u", opts))
	assert.Equal(t, BuildInfo(testLauncher, "u"), BuildInfo(testLauncher, "u"))
	assert.Equal(t, BuildCaptions(testLauncher, "u", "t", "en"), BuildCaptions(testLauncher, "u", "t", "en"))
	assert.Equal(t, BuildAudioExtract("ffmpeg", "a", "b", "64k"), BuildAudioExtract("ffmpeg", "a", "b", "64k"))
}

func TestBuilders_DoNotShareLauncherBacking(t *testing.T) {
	l := Launcher{"yt-dlp"}
	first := BuildInfo(l, "first")
	second := BuildInfo(l, "second")

	assert.Equal(t, "first", first[len(first)-1])
	assert.Equal(t, "second", second[len(second)-1])
	assert.Equal(t, Launcher{"yt-dlp"}, l)
}
