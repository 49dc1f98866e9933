package panel

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const skeletonLine = "  ░░░░░░░░░░░░░░░░░░░░░░░░"

var textPrinter = message.NewPrinter(language.English)

// WriteText renders l for a terminal. Cards are numbered from 1 in grid order.
func WriteText(w io.Writer, l Layout) error {
	bw := bufio.NewWriter(w)

	switch {
	case l.Skeletons > 0:
		fmt.Fprintln(bw, "Loading…")
		writeSkeletons(bw, l.Skeletons)

	case l.NoResults != nil:
		fmt.Fprintln(bw, "No books found")
		fmt.Fprintf(bw, "We couldn't find any books matching %q. Try different keywords or explore our suggestions below.\n\n", l.NoResults.Query)
		fmt.Fprintln(bw, "Search Tips")
		for _, tip := range l.NoResults.Tips {
			fmt.Fprintf(bw, "  • %s\n", tip)
		}

	case l.Empty != nil:
		fmt.Fprintln(bw, "Discover Amazing Books")
		fmt.Fprintln(bw, "Search for any book, author, or topic to start exploring millions of books from around the world.")
		labels := make([]string, 0, len(l.Empty.Suggestions))
		for _, s := range l.Empty.Suggestions {
			labels = append(labels, "["+s.Label+"]")
		}
		fmt.Fprintf(bw, "Try: %s\n", strings.Join(labels, " "))

	default:
		if h := l.Header; h != nil {
			textPrinter.Fprintf(bw, "Found %d books\n", h.Found)
			fmt.Fprintf(bw, "Search results for %q\n", h.Query)
			if h.ShowingFirst > 0 {
				fmt.Fprintf(bw, "Showing first %d results\n", h.ShowingFirst)
			}
			fmt.Fprintln(bw, strings.Repeat("-", 60))
		}
		for i, c := range l.Cards {
			mark := " "
			if c.InWishlist {
				mark = "♥"
			}
			year := ""
			if c.Book.Year > 0 {
				year = fmt.Sprintf(" (%d)", c.Book.Year)
			}
			fmt.Fprintf(bw, "%3d. %s %s — %s%s [%s]\n", i+1, mark, c.Book.Title, c.Book.FullAuthors(), year, c.Book.ID)
		}
		switch {
		case l.TrailingSkeletons > 0:
			writeSkeletons(bw, l.TrailingSkeletons)
		case l.LoadMore != nil:
			fmt.Fprintln(bw, "\n[more] Load More Books")
		case l.EndOfResults:
			fmt.Fprintln(bw, "\n🎉 You've seen all the results!")
			fmt.Fprintln(bw, "Try a different search term to discover more books.")
		}
	}
	return bw.Flush()
}

func writeSkeletons(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprintln(w, skeletonLine)
	}
}
