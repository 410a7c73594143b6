package command

// yt-dlp flags
const (
	FlagNoProgress        = "--no-progress"
	FlagNewline           = "--newline"
	FlagRestrictFilenames = "--restrict-filenames"
	FlagWriteInfoJSON     = "--write-info-json"
	FlagOutput            = "-o"
	FlagNoPlaylist        = "--no-playlist"
	FlagFormat            = "-f"
	FlagExtractAudio      = "-x"
	FlagMergeOutputFormat = "--merge-output-format"
	FlagDumpSingleJSON    = "-J"
	FlagSkipDownload      = "--skip-download"
	FlagWriteSubs         = "--write-subs"
	FlagWriteAutoSubs     = "--write-auto-subs"
	FlagSubLangs          = "--sub-langs"
	FlagSubFormat         = "--sub-format"
	AudioFormatSelector   = "bestaudio/best"
	VideoFormatSelector   = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/bv*+ba/b"
	MergeContainer        = "mp4"
	CaptionFormat         = "vtt"
)

// ffmpeg flags
const (
	FlagOverwrite    = "-y"
	FlagInput        = "-i"
	FlagNoVideo      = "-vn"
	FlagAudioCodec   = "-c:a"
	FlagAudioBitrate = "-b:a"
	OpusEncoder      = "libopus"
)

// progressFlags keep yt-dlp output line-oriented for log capture
var progressFlags = []string{FlagNoProgress, FlagNewline}
