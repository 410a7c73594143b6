package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/ytdl-go/internal/captions"
	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/domain"
)

// Preview kinds
const (
	KindDownload = "download"
	KindAudio    = "audio"
	KindInfo     = "info"
	KindCaptions = "captions"
	KindExtract  = "extract"
)

// CommandHandler shows the commands the CLI would run, without running them
type CommandHandler struct {
	config   *domain.Config
	launcher command.Launcher
}

// NewCommandHandler creates a new command preview handler
func NewCommandHandler(config *domain.Config, launcher command.Launcher) *CommandHandler {
	return &CommandHandler{
		config:   config,
		launcher: launcher,
	}
}

// PreviewResponse is the command a workflow step would execute
type PreviewResponse struct {
	Kind    string   `json:"kind"`
	Argv    []string `json:"argv"`
	Command string   `json:"command"`
}

// Preview handles GET /api/v1/commands/preview
func (h *CommandHandler) Preview(c *gin.Context) {
	kind := c.Query("kind")
	url := c.Query("url")
	outDir := c.DefaultQuery("outdir", h.config.Download.OutputDir)

	var cmd domain.Command
	switch kind {
	case KindDownload, KindAudio:
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}
		playlist := true
		if raw := c.Query("playlist"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "playlist must be a boolean"})
				return
			}
			playlist = v
		}
		cmd = command.BuildDownload(h.launcher, url, command.DownloadOptions{
			OutputTemplate:  h.config.Download.OutputTemplate(outDir),
			AudioOnly:       kind == KindAudio,
			IncludePlaylist: playlist,
		})

	case KindInfo:
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}
		cmd = command.BuildInfo(h.launcher, url)

	case KindCaptions:
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}
		lang := c.DefaultQuery("lang", captions.PreferredLanguage)
		cmd = command.BuildCaptions(h.launcher, url, filepath.Join(outDir, domain.DefaultIDOutputName), lang)

	case KindExtract:
		id := c.Query("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}
		bitrate := c.DefaultQuery("bitrate", h.config.Download.Bitrate)
		cmd = command.BuildAudioExtract(
			h.config.Transcoder.Binary,
			filepath.Join(outDir, id+".mp4"),
			filepath.Join(outDir, id+".opus"),
			bitrate,
		)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of download, audio, info, captions, extract"})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Kind:    kind,
		Argv:    cmd,
		Command: command.FormatCommand(cmd),
	})
}
