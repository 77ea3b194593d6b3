// Package export renders a result set as a spreadsheet-friendly CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jonathan/lead-prospector/internal/types"
)

// utf8BOM makes Excel detect the encoding of accented Portuguese text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// header is the fixed column order of the export surface.
var header = []string{
	"Name", "Phone", "WhatsApp", "Email", "Website", "Instagram",
	"Facebook", "LinkedIn", "Address", "MapsLink", "Rating",
	"ReviewCount", "WebSummary",
}

// WriteCSV writes the contacts as a BOM-prefixed UTF-8 CSV. Sentinel field
// values are exported as empty cells: the sentinel means absent.
func WriteCSV(w io.Writer, contacts []types.ContactRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, c := range contacts {
		row := []string{
			c.Name,
			blankIfSentinel(c.Phone),
			yesNo(c.HasWhatsApp),
			blankIfSentinel(c.Email),
			blankIfSentinel(c.Website),
			blankIfSentinel(c.Instagram),
			blankIfSentinel(c.Facebook),
			blankIfSentinel(c.LinkedIn),
			blankIfSentinel(c.Address),
			blankIfSentinel(c.MapsLink),
			strconv.FormatFloat(c.Rating, 'f', -1, 64),
			strconv.Itoa(c.ReviewCount),
			c.WebSummary,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func blankIfSentinel(v string) string {
	if types.IsSentinel(v) {
		return ""
	}
	return v
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
