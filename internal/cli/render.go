package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"os"

	"github.com/dustin/go-humanize"

	"inkpress/pkg/models"
	"inkpress/pkg/transport"
	"inkpress/pkg/validation"
)

// describeErr turns transport and validation failures into actionable
// messages.
func describeErr(err error) error {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		var b strings.Builder
		b.WriteString("invalid input:")
		for _, f := range fields {
			fmt.Fprintf(&b, "\n  %s: %s", f, fe[f])
		}
		return errors.New(b.String())
	}

	switch transport.KindOf(err) {
	case transport.KindUnauthorized:
		return fmt.Errorf("session expired or rejected; run 'inkpress login' (%v)", err)
	case transport.KindNotFound:
		return fmt.Errorf("not found; it may have been deleted (%v)", err)
	case transport.KindNetwork:
		return fmt.Errorf("could not reach the server (%v)", err)
	}
	return err
}

func printArticles(items []models.Article, p models.Pagination) {
	if len(items) == 0 {
		fmt.Println("No articles.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tAUTHOR\tUPDATED")
	for _, a := range items {
		author := a.AuthorID
		if a.Author != nil && a.Author.Name != "" {
			author = a.Author.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, truncate(a.Title, 40), a.Status, author, humanize.Time(a.UpdatedAt))
	}
	w.Flush()
	if p.TotalPages > 1 {
		fmt.Printf("Page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	}
}

func printArticle(a models.Article) {
	fmt.Printf("ID:      %s\n", a.ID)
	fmt.Printf("Title:   %s\n", a.Title)
	fmt.Printf("Status:  %s\n", a.Status)
	if a.Author != nil {
		fmt.Printf("Author:  %s <%s>\n", a.Author.Name, a.Author.Email)
	} else if a.AuthorID != "" {
		fmt.Printf("Author:  %s\n", a.AuthorID)
	}
	fmt.Printf("Created: %s\n", humanize.Time(a.CreatedAt))
	fmt.Printf("Updated: %s\n", humanize.Time(a.UpdatedAt))
	fmt.Println()
	fmt.Println(a.Content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
