package domain

// DoctorReport describes whether the environment can run the workflows
type DoctorReport struct {
	InterpreterVersion string `json:"interpreter_version"`
	DownloaderPresent  bool   `json:"downloader_present"`
	TranscoderPresent  bool   `json:"transcoder_present"`
	OutputDirWritable  bool   `json:"output_dir_writable"`
}

// Ready reports whether every check passed
func (r DoctorReport) Ready() bool {
	return r.DownloaderPresent && r.TranscoderPresent && r.OutputDirWritable
}

// DownloadSummary is emitted by the single-download and audio workflows
type DownloadSummary struct {
	URL      string `json:"url"`
	OutDir   string `json:"outdir"`
	ExitCode int    `json:"exit_code"`
}

// PairSummary is emitted once the video+audio+captions workflow finishes
type PairSummary struct {
	URL          string   `json:"url"`
	OutDir       string   `json:"outdir"`
	ID           string   `json:"id"`
	MP4Path      string   `json:"mp4_path"`
	OpusPath     string   `json:"opus_path"`
	CaptionsLang *string  `json:"captions_lang"`
	Captions     []string `json:"captions"`
	ExitCode     int      `json:"exit_code"`
}
