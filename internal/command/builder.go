package command

import "github.com/yourusername/ytdl-go/internal/domain"

// DownloadOptions parametrizes BuildDownload
type DownloadOptions struct {
	OutputTemplate  string   // yt-dlp -o template; DefaultOutputName when empty
	AudioOnly       bool     // best audio stream, extracted with -x
	IncludePlaylist bool     // false adds --no-playlist
	ExtraArgs       []string // appended verbatim before the URL
}

// BuildDownload builds the yt-dlp command for a video or audio download.
//
// Filenames are restricted and an .info.json sidecar is always written,
// so id-based templates still leave the human-readable metadata on disk.
// The URL is always the last token.
func BuildDownload(l Launcher, url string, opts DownloadOptions) domain.Command {
	outtmpl := opts.OutputTemplate
	if outtmpl == "" {
		outtmpl = domain.DefaultOutputName
	}

	cmd := l.Command()
	cmd = append(cmd, progressFlags...)
	cmd = append(cmd, FlagRestrictFilenames, FlagWriteInfoJSON)
	cmd = append(cmd, FlagOutput, outtmpl)

	if !opts.IncludePlaylist {
		cmd = append(cmd, FlagNoPlaylist)
	}

	if opts.AudioOnly {
		cmd = append(cmd, FlagFormat, AudioFormatSelector, FlagExtractAudio)
	} else {
		cmd = append(cmd, FlagFormat, VideoFormatSelector, FlagMergeOutputFormat, MergeContainer)
	}

	cmd = append(cmd, opts.ExtraArgs...)
	return append(cmd, url)
}

// BuildInfo builds the yt-dlp command that prints the metadata JSON
func BuildInfo(l Launcher, url string) domain.Command {
	cmd := l.Command()
	return append(cmd, FlagDumpSingleJSON, url)
}

// BuildCaptions builds the yt-dlp command that fetches manual and
// automatic captions for one language without downloading media.
// yt-dlp exits 0 and writes nothing when no track exists for lang.
func BuildCaptions(l Launcher, url, outputTemplate, lang string) domain.Command {
	cmd := l.Command()
	cmd = append(cmd, progressFlags...)
	cmd = append(cmd,
		FlagRestrictFilenames,
		FlagSkipDownload,
		FlagWriteSubs,
		FlagWriteAutoSubs,
		FlagSubLangs, lang,
		FlagSubFormat, CaptionFormat,
		FlagOutput, outputTemplate,
		FlagNoPlaylist,
	)
	return append(cmd, url)
}

// BuildAudioExtract builds the ffmpeg command that re-encodes the audio
// track of src to Opus at dest. Empty transcoder and bitrate fall back
// to DefaultTranscoder and DefaultBitrate.
func BuildAudioExtract(transcoder, src, dest, bitrate string) domain.Command {
	if transcoder == "" {
		transcoder = domain.DefaultTranscoder
	}
	if bitrate == "" {
		bitrate = domain.DefaultBitrate
	}
	return domain.Command{
		transcoder,
		FlagOverwrite,
		FlagInput, src,
		FlagNoVideo,
		FlagAudioCodec, OpusEncoder,
		FlagAudioBitrate, bitrate,
		dest,
	}
}
