package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytdl-go/internal/app"
	"github.com/yourusername/ytdl-go/internal/domain"
)

var dlCmd = &cobra.Command{
	Use:   "dl [url] [-- yt-dlp args...]",
	Short: "Download best video+audio for a URL",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDownload(cmd, args, false)
	},
}

var audioCmd = &cobra.Command{
	Use:   "audio [url] [-- yt-dlp args...]",
	Short: "Download audio only for a URL",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDownload(cmd, args, true)
	},
}

func runDownload(cmd *cobra.Command, args []string, audioOnly bool) {
	url, extra, err := splitArgs(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(domain.ExitUsage)
	}

	outDir, _ := cmd.Flags().GetString("outdir")
	jsonOut, _ := cmd.Flags().GetBool("json")

	env := setup()
	ctx, cancel := signalContext()

	summary, err := env.workflows.Download(ctx, app.DownloadRequest{
		URL:             url,
		OutDir:          outDir,
		AudioOnly:       audioOnly,
		IncludePlaylist: playlistEnabled(cmd),
		ExtraArgs:       extra,
		Verbose:         verbose,
		JSON:            jsonOut,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	cancel()
	env.Close()
	os.Exit(summary.ExitCode)
}

var infoCmd = &cobra.Command{
	Use:   "info [url]",
	Short: "Fetch metadata (no download)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOut, _ := cmd.Flags().GetBool("json")
		if noJSON, _ := cmd.Flags().GetBool("no-json"); noJSON {
			jsonOut = false
		}

		env := setup()
		ctx, cancel := signalContext()

		code := env.workflows.Info(ctx, app.InfoRequest{
			URL:     args[0],
			JSON:    jsonOut,
			Verbose: verbose,
		})

		cancel()
		env.Close()
		os.Exit(code)
	},
}

var pairCmd = &cobra.Command{
	Use:   "pair [url]",
	Short: "Download a video by id, extract an opus track and fetch captions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("outdir")
		bitrate, _ := cmd.Flags().GetString("bitrate")
		jsonOut, _ := cmd.Flags().GetBool("json")
		writeSummary, _ := cmd.Flags().GetBool("write-summary")

		env := setup()
		ctx, cancel := signalContext()

		_, code, err := env.workflows.Pair(ctx, app.PairRequest{
			URL:          args[0],
			OutDir:       outDir,
			Bitrate:      bitrate,
			Verbose:      verbose,
			JSON:         jsonOut,
			WriteSummary: writeSummary,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if code == domain.ExitOK {
				code = domain.ExitUsage
			}
		}

		cancel()
		env.Close()
		os.Exit(code)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that yt-dlp, ffmpeg and the output directory are usable",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("outdir")
		jsonOut, _ := cmd.Flags().GetBool("json")

		env := setup()
		_, code := env.workflows.Doctor(app.DoctorRequest{OutDir: outDir, JSON: jsonOut})

		env.Close()
		os.Exit(code)
	},
}

// splitArgs separates the URL from yt-dlp arguments given after "--"
func splitArgs(cmd *cobra.Command, args []string) (string, []string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		dash = len(args)
	}
	if dash != 1 {
		return "", nil, fmt.Errorf("expected exactly one URL before \"--\", got %d", dash)
	}
	return args[0], args[1:], nil
}

// playlistEnabled resolves --playlist / --no-playlist; playlists are on by default
func playlistEnabled(cmd *cobra.Command) bool {
	playlist, _ := cmd.Flags().GetBool("playlist")
	noPlaylist, _ := cmd.Flags().GetBool("no-playlist")
	return playlist && !noPlaylist
}

func init() {
	for _, c := range []*cobra.Command{dlCmd, audioCmd} {
		c.Flags().String("outdir", "", "Output directory (default: download.output_dir)")
		c.Flags().Bool("playlist", true, "Download playlist items if the URL is a playlist")
		c.Flags().Bool("no-playlist", false, "Download only the video, not the playlist")
		c.Flags().Bool("json", false, "Print a JSON summary to stdout")
	}

	infoCmd.Flags().Bool("json", true, "Print raw JSON to stdout")
	infoCmd.Flags().Bool("no-json", false, "Print a short human-readable summary")

	pairCmd.Flags().String("outdir", "", "Output directory (default: download.output_dir)")
	pairCmd.Flags().String("bitrate", "", "Opus bitrate (default: download.bitrate)")
	pairCmd.Flags().Bool("json", false, "Print the summary as one JSON line")
	pairCmd.Flags().Bool("write-summary", false, "Also write <outdir>/<id>.pair.json")

	doctorCmd.Flags().String("outdir", "", "Output directory to probe (default: download.output_dir)")
	doctorCmd.Flags().Bool("json", false, "Print the report as JSON")
}
