package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded workflow runs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		workflow, _ := cmd.Flags().GetString("workflow")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOut, _ := cmd.Flags().GetBool("json")

		if workflow != "" && !domain.ValidateWorkflow(domain.Workflow(workflow)) {
			fmt.Fprintf(os.Stderr, "Error: unknown workflow %q\n", workflow)
			os.Exit(domain.ExitUsage)
		}

		config := loadConfig()
		dbPath := config.History.DatabasePath
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			if !config.History.Enabled {
				fmt.Fprintln(os.Stderr, "No runs recorded; set history.enabled to true to keep a history.")
			}
			printRuns(os.Stdout, nil, jsonOut)
			return
		}

		repo, err := infrastructure.NewSQLiteRunRepository(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(domain.ExitUsage)
		}
		defer repo.Close()

		var runs []*domain.RunRecord
		if workflow != "" {
			runs, err = repo.FindByWorkflow(domain.Workflow(workflow), limit)
		} else {
			runs, err = repo.FindRecent(limit)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(domain.ExitUsage)
		}

		printRuns(os.Stdout, runs, jsonOut)
	},
}

func printRuns(w io.Writer, runs []*domain.RunRecord, asJSON bool) {
	if runs == nil {
		runs = []*domain.RunRecord{}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(runs)
		return
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found.")
		return
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			truncate(r.ID, 8),
			string(r.Workflow),
			truncate(r.URL, 48),
			r.VideoID,
			strconv.Itoa(r.ExitCode),
			r.CreatedAt.Local().Format(time.DateTime),
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"ID", "Workflow", "URL", "Video", "Exit", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
}

func init() {
	historyCmd.Flags().StringP("workflow", "w", "", "Only show runs of this workflow (dl, audio, info, pair, doctor)")
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs (0 for all)")
	historyCmd.Flags().Bool("json", false, "Print runs as JSON")
}
