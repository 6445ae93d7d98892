package inventory

import (
	"fmt"
	"io"
)

// ReportHeader is the first line written by Report.
const ReportHeader = "Items Report"

// Report writes a listing of every entry to w: a header line followed by one
// "<item> -> <qty>" line per entry in insertion order.
func (s *Store) Report(w io.Writer) error {
	if _, err := fmt.Fprintln(w, ReportHeader); err != nil {
		return err
	}
	for _, e := range s.Entries() {
		if _, err := fmt.Fprintf(w, "%s -> %d\n", e.Item, e.Quantity); err != nil {
			return err
		}
	}
	return nil
}
