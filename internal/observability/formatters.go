// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/lead-prospector/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchParams outputs a human-readable summary of the search inputs.
func (p *Printer) PrintSearchParams(params types.SearchParams) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Location: %s\n", params.Location))
	sb.WriteString(fmt.Sprintf("Niche:    %s\n", params.Niche))
	if params.Type != "" {
		sb.WriteString(fmt.Sprintf("Type:     %s\n", params.Type))
	}
	if params.Radius != "" {
		sb.WriteString(fmt.Sprintf("Radius:   %s\n", params.Radius))
	}

	var modes []string
	if params.WhatsAppOnly {
		modes = append(modes, "whatsapp-only")
	}
	if params.FastMode {
		modes = append(modes, "fast")
	}
	if params.DeepSearchEnabled() {
		modes = append(modes, "deep: "+strings.Join(params.DeepSearchPlatforms(), ", "))
	}
	if len(modes) > 0 {
		sb.WriteString(fmt.Sprintf("Mode:     %s\n", strings.Join(modes, "; ")))
	}
	if len(params.ExcludeNames) > 0 {
		sb.WriteString(fmt.Sprintf("Excluded: %d previous names\n", len(params.ExcludeNames)))
	}

	p.printBox("SEARCH PARAMETERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintContacts outputs the top contacts found with their key channels.
func (p *Printer) PrintContacts(contacts []types.ContactRecord) {
	if len(contacts) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO CONTACTS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total contacts: %d\n\n", len(contacts)))

	count := min(len(contacts), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := contacts[i]
		name := c.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))

		if !types.IsSentinel(c.Phone) {
			line := fmt.Sprintf("    %s", c.Phone)
			if c.HasWhatsApp {
				line += " (WhatsApp)"
			}
			sb.WriteString(line + "\n")
		}

		var channels []string
		if !types.IsSentinel(c.Website) {
			channels = append(channels, "web")
		}
		if !types.IsSentinel(c.Instagram) {
			channels = append(channels, "instagram")
		}
		if !types.IsSentinel(c.Facebook) {
			channels = append(channels, "facebook")
		}
		if !types.IsSentinel(c.LinkedIn) {
			channels = append(channels, "linkedin")
		}
		if len(channels) > 0 {
			sb.WriteString(fmt.Sprintf("    [%s]\n", strings.Join(channels, " ")))
		}
		if c.Rating > 0 {
			sb.WriteString(fmt.Sprintf("    Rating: %.1f (%d reviews)\n", c.Rating, c.ReviewCount))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(contacts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more contacts", len(contacts)-maxItemsToShow))
	}

	p.printBox("CONTACTS FOUND", sb.String())
}

// PrintRoundProgress outputs a one-line pagination progress note.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRoundProgress(round, maxRounds, collected, target int) {
	fmt.Fprintf(p.out, "  round %d/%d: %d/%d contacts\n", round, maxRounds, collected, target)
}
