package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkpress/internal/cli/prompt"
	"inkpress/pkg/access"
	"inkpress/pkg/models"
	"inkpress/pkg/state"
	"inkpress/pkg/transport"
)

var (
	listPage   int
	listLimit  int
	listStatus string
	listSearch string
	listSort   string
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Browse and manage articles",
}

func addListFlags(c *cobra.Command) {
	c.Flags().IntVar(&listPage, "page", 1, "page number")
	c.Flags().IntVar(&listLimit, "limit", models.DefaultLimit, "page size")
	c.Flags().StringVar(&listSearch, "search", "", "filter by title, body or author")
	c.Flags().StringVar(&listSort, "sort", "newest", "sort order: newest, oldest, title, title-desc")
}

func sortKey() (state.SortKey, error) {
	switch listSort {
	case "newest", "":
		return state.SortNewest, nil
	case "oldest":
		return state.SortOldest, nil
	case "title":
		return state.SortTitleAsc, nil
	case "title-desc":
		return state.SortTitleDesc, nil
	}
	return state.SortNewest, fmt.Errorf("unknown sort order %q", listSort)
}

// requireView enforces the role gate the web client applies before
// showing the authenticated listing.
func requireView(actor *models.Actor) error {
	switch access.Guard(actor, access.ViewArticles) {
	case access.Allow:
		return nil
	case access.RedirectToLogin:
		return fmt.Errorf("not logged in; run 'inkpress login' or use 'inkpress articles public'")
	default:
		return fmt.Errorf("your role may not view the article listing")
	}
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles (authenticated view)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := requireView(a.Session.Actor()); err != nil {
			return err
		}
		key, err := sortKey()
		if err != nil {
			return err
		}

		var f transport.Filters
		if listStatus != "" {
			st := models.Status(listStatus)
			if st != models.StatusDraft && st != models.StatusPublished {
				return fmt.Errorf("unknown status %q (use DRAFT or PUBLISHED)", listStatus)
			}
			f.Status = st
		}
		f.Search = listSearch

		if err := a.Articles.List(cmd.Context(), listPage, listLimit, f); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		snap := a.Articles.Snapshot()
		printArticles(state.Refine(snap.Items, "", "", key), snap.Pagination)
		return nil
	},
}

var articlesMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List articles you authored",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := requireView(a.Session.Actor()); err != nil {
			return err
		}
		if err := a.Articles.ListMine(cmd.Context(), listPage, listLimit); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		snap := a.Articles.Snapshot()
		printArticles(snap.Items, snap.Pagination)
		return nil
	},
}

var articlesPublicCmd = &cobra.Command{
	Use:   "public",
	Short: "List published articles (no login required)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := a.Articles.ListPublic(cmd.Context(), listPage, listLimit); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		snap := a.Articles.Snapshot()
		printArticles(snap.Items, snap.Pagination)
		return nil
	},
}

var articlesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Fetch and display one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := a.Articles.FetchOne(cmd.Context(), args[0]); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		cur := a.Articles.Current()
		if cur == nil {
			return fmt.Errorf("article %s not loaded", args[0])
		}
		printArticle(*cur)
		return nil
	},
}

var (
	editTitle   string
	editContent string
	editStatus  string
)

func addFieldFlags(c *cobra.Command) {
	c.Flags().StringVar(&editTitle, "title", "", "article title")
	c.Flags().StringVar(&editContent, "content", "", "article body markup")
	c.Flags().StringVar(&editStatus, "status", "", "DRAFT or PUBLISHED")
}

var articlesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if !access.CanCreate(a.Session.Actor()) {
			return fmt.Errorf("your role may not create articles")
		}

		title := editTitle
		if title == "" {
			title, err = prompt.Line("Title")
			if err != nil {
				return err
			}
		}
		content := editContent
		if content == "" {
			content, err = prompt.Line("Content")
			if err != nil {
				return err
			}
		}
		status := models.Status(editStatus)
		if status == "" {
			status = models.StatusDraft
		}

		created, err := a.Articles.Create(cmd.Context(), models.ArticleFields{Title: title, Content: content, Status: status})
		if err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		fmt.Printf("Created %s (%s)\n", created.ID, created.Status)
		return nil
	},
}

var articlesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		id := args[0]

		// fetch first so ownership can be checked and untouched fields
		// keep their values
		if err := a.Articles.FetchOne(cmd.Context(), id); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		cur := a.Articles.Current()
		if cur == nil {
			return fmt.Errorf("article %s not loaded", id)
		}

		if !access.CanEdit(a.Session.Actor(), cur) {
			return fmt.Errorf("you may not edit this article")
		}

		fields := models.ArticleFields{Title: cur.Title, Content: cur.Content, Status: cur.Status}
		if cmd.Flags().Changed("title") {
			fields.Title = editTitle
		}
		if cmd.Flags().Changed("content") {
			fields.Content = editContent
		}
		if cmd.Flags().Changed("status") {
			fields.Status = models.Status(editStatus)
		}

		updated, err := a.Articles.Update(cmd.Context(), id, fields)
		if err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		fmt.Printf("Updated %s (%s)\n", updated.ID, updated.Status)
		return nil
	},
}

var deleteYes bool

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an article (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if !access.CanDelete(a.Session.Actor()) {
			return fmt.Errorf("only an admin may delete articles")
		}
		if !deleteYes && !prompt.Confirm(fmt.Sprintf("Delete article %s?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := a.Articles.Delete(cmd.Context(), args[0]); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts over the loaded listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if err := requireView(a.Session.Actor()); err != nil {
			return err
		}
		if err := a.Articles.List(cmd.Context(), listPage, listLimit, transport.Filters{}); err != nil {
			a.Articles.ClearError()
			return describeErr(err)
		}
		snap := a.Articles.Snapshot()
		st := state.DeriveStats(snap.Items, a.Session.Actor())
		fmt.Printf("Total:     %d\n", st.Total)
		fmt.Printf("Published: %d\n", st.Published)
		fmt.Printf("Drafts:    %d\n", st.Drafts)
		fmt.Printf("Mine:      %d\n", st.Mine)
		return nil
	},
}

func init() {
	addListFlags(articlesListCmd)
	articlesListCmd.Flags().StringVar(&listStatus, "status", "", "filter by DRAFT or PUBLISHED")
	addListFlags(articlesMineCmd)
	addListFlags(articlesPublicCmd)
	addListFlags(statsCmd)

	addFieldFlags(articlesCreateCmd)
	addFieldFlags(articlesEditCmd)
	articlesDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")

	articlesCmd.AddCommand(
		articlesListCmd,
		articlesMineCmd,
		articlesPublicCmd,
		articlesShowCmd,
		articlesCreateCmd,
		articlesEditCmd,
		articlesDeleteCmd,
	)
	rootCmd.AddCommand(articlesCmd, statsCmd)
}
