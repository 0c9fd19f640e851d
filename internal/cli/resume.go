package cli

import (
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a previous crawl",
	Long:  `Resume crawling from the saved frontier snapshot, appending to the existing audit log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyCrawlFlags(cmd)
		return runCrawl(cmd, true)
	},
}

func init() {
	resumeCmd.Flags().StringVar(&startURL, "start-url", "", "Starting URL if the snapshot is empty")
	resumeCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Data storage directory")
	resumeCmd.Flags().IntVar(&maxPages, "max-pages", 20000, "Stop after this many pages have been saved (cumulative)")
	resumeCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "Ignore robots.txt")
}
