package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/assistkit/gh-skill/internal/models"
)

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Truncate shortens a string to width display cells, appending "..." when it
// had to cut.
func Truncate(str string, width int) string {
	if runewidth.StringWidth(str) <= width {
		return str
	}
	return runewidth.Truncate(str, width, "...")
}

// RepoTable renders repository summaries as an aligned text table.
func RepoTable(repos []models.RepoSummary) string {
	if len(repos) == 0 {
		return "No repositories found.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s %s\n",
		PadRight("NAME", 30), PadRight("LANGUAGE", 12), PadRight("STARS", 6), "DESCRIPTION"))
	for _, r := range repos {
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			PadRight(Truncate(r.Name, 30), 30),
			PadRight(r.Language, 12),
			PadRight(fmt.Sprintf("%d", r.Stars), 6),
			Truncate(r.Description, 60),
		))
	}
	return b.String()
}

// RunTable renders workflow run summaries as an aligned text table.
func RunTable(runs []models.RunSummary) string {
	if len(runs) == 0 {
		return "No workflow runs found.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
		PadRight("WORKFLOW", 25), PadRight("STATUS", 12), PadRight("CONCLUSION", 12),
		PadRight("BRANCH", 20), "COMMIT"))
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
			PadRight(Truncate(r.Name, 25), 25),
			PadRight(r.Status, 12),
			PadRight(r.Conclusion, 12),
			PadRight(Truncate(r.Branch, 20), 20),
			r.Commit,
		))
	}
	return b.String()
}

// CommitTable renders commit summaries, one line per commit.
func CommitTable(commits []models.CommitSummary) string {
	if len(commits) == 0 {
		return "No commits found.\n"
	}

	var b strings.Builder
	for _, c := range commits {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			PadRight(c.SHA, 8),
			PadRight(Truncate(c.Message, 60), 60),
			c.Author,
		))
	}
	return b.String()
}
