package sim

import (
	"context"
	"fmt"
	"net"
	"strconv"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes result rows to GreptimeDB via the ingester client.
// The table is auto-created by the ingest path on first write.
type GreptimeDBWriter struct {
	client *greptime.Client
	table  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer. The endpoint is
// "host" or "host:port".
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host, portStr = endpoint, ""
	}

	cfg := greptime.NewConfig(host).WithDatabase(database)
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid GreptimeDB endpoint %q: %w", endpoint, err)
		}
		cfg = cfg.WithPort(port)
	}

	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{client: client, table: RowTableName}, nil
}

// Write inserts a single result row.
func (w *GreptimeDBWriter) Write(row Row) error {
	return w.WriteBatch([]Row{row})
}

// WriteBatch inserts multiple result rows.
func (w *GreptimeDBWriter) WriteBatch(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := newRowTable(w.table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := appendRow(tbl, r); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		return fmt.Errorf("writing rows to GreptimeDB: %w", err)
	}
	return nil
}

// newRowTable builds the column layout for Row. Column order here must match
// the value order in appendRow.
func newRowTable(name string) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return nil, err
	}
	for _, col := range []string{
		"time",
		"upstream_pressure_psig",
		"downstream_pressure_psig",
		"flowrate_lb_hr",
		"mass_flow_kg_s",
		"valve_opening_pct",
	} {
		if err := tbl.AddFieldColumn(col, types.FLOAT64); err != nil {
			return nil, err
		}
	}
	if err := tbl.AddFieldColumn("flow_regime", types.STRING); err != nil {
		return nil, err
	}
	for _, col := range []string{
		"dp_dt_upstream_psi_s",
		"dp_dt_downstream_psi_s",
		"z_factor",
		"k_ratio",
		"molar_mass",
	} {
		if err := tbl.AddFieldColumn(col, types.FLOAT64); err != nil {
			return nil, err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}
	return tbl, nil
}

// appendRow adds one row's values in column order.
func appendRow(tbl *table.Table, r Row) error {
	return tbl.AddRow(
		r.RunID,
		r.Time,
		r.UpstreamPressurePsig,
		r.DownstreamPressurePsig,
		r.FlowRateLbHr,
		r.MassFlowKgS,
		r.ValveOpeningPct,
		string(r.FlowRegime),
		r.DpDtUpstreamPsiS,
		r.DpDtDownstreamPsiS,
		r.ZFactor,
		r.KRatio,
		r.MolarMass,
		r.Timestamp,
	)
}
