package sim

import "context"

// RowWriter is an interface to support different result-row sinks.
type RowWriter interface {
	Write(Row) error
}

// Optional: writers can also support batch mode.
type batchRowWriter interface {
	WriteBatch([]Row) error
}

// WriteRows sends rows to a writer, using batch mode when supported.
func WriteRows(w RowWriter, rows []Row) error {
	if bw, ok := w.(batchRowWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Drain consumes a streaming run into a writer, returning the rows seen so
// callers can still derive KPIs.
func Drain(ctx context.Context, stream <-chan Row, w RowWriter) ([]Row, error) {
	var rows []Row
	for row := range stream {
		if err := w.Write(row); err != nil {
			return rows, err
		}
		rows = append(rows, row)
		if ctx.Err() != nil {
			return rows, ctx.Err()
		}
	}
	return rows, nil
}
