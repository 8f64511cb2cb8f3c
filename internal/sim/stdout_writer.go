// Writer implementation printing result rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints result rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single result row.
func (w *StdoutWriter) Write(row Row) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple result rows.
func (w *StdoutWriter) WriteBatch(rows []Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
