package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/swipestate/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printDrafts(w io.Writer, list []model.Draft) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Drafts (%d)", len(list))))
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no drafts"))
		return
	}
	for _, d := range list {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			idStyle.Render(string(d.ID)),
			d.Title,
			mutedStyle.Render(d.CreatedAt.Format(time.RFC3339)))
	}
}

func printFavorites(w io.Writer, list []model.FavoriteEntry) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Favorites (%d)", len(list))))
	for _, e := range list {
		printEntry(w, e.Card, e.LikeID, "")
	}
}

func printHistory(w io.Writer, list []model.HistoryEntry) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("History (%d)", len(list))))
	for _, e := range list {
		printEntry(w, e.Card, e.HistoryID, string(e.Action))
	}
}

func printEntry(w io.Writer, card model.Card, serverID, note string) {
	if serverID == "" {
		serverID = "local"
	}
	line := fmt.Sprintf("  %s  %s", idStyle.Render("card "+string(card.ID)), card.Title)
	if note != "" {
		line += "  " + note
	}
	fmt.Fprintln(w, line+"  "+mutedStyle.Render("("+serverID+")"))
}
