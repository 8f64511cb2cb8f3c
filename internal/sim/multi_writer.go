package sim

// MultiWriter fans result rows out to multiple writers.
type MultiWriter struct {
	writers []RowWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(writers ...RowWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write sends a result row to all writers.
func (mw *MultiWriter) Write(row Row) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []Row) error {
	for _, w := range mw.writers {
		if err := WriteRows(w, rows); err != nil {
			return err
		}
	}
	return nil
}
