package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"inkpress/internal/retention"
	"inkpress/pkg/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the offline article cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally cached articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := getApp(cmd); err != nil {
			return err
		}
		cached, err := store.ListCachedArticles()
		if err != nil {
			return err
		}
		if len(cached) == 0 {
			fmt.Println("Cache is empty.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tFETCHED")
		for _, c := range cached {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Article.ID, truncate(c.Article.Title, 40), c.Article.Status, humanize.Time(c.FetchedAt))
		}
		w.Flush()
		fmt.Printf("%d cached, %s on disk\n", len(cached), humanize.Bytes(store.DiskUsage()))
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a cached article without contacting the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := getApp(cmd); err != nil {
			return err
		}
		c, ok, err := store.GetCachedArticle(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("article %s is not cached", args[0])
		}
		fmt.Printf("(cached %s)\n", humanize.Time(c.FetchedAt))
		printArticle(c.Article)
		return nil
	},
}

var pruneMaxAge time.Duration

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cached articles older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		maxAge := pruneMaxAge
		if maxAge == 0 {
			maxAge = a.Config.Retention.MaxAgeDuration()
		}
		n, err := retention.RunOnce(maxAge)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached article(s).\n", n)
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().DurationVar(&pruneMaxAge, "max-age", 0, "override the configured retention window (e.g. 72h)")
	cacheCmd.AddCommand(cacheListCmd, cacheShowCmd, cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
