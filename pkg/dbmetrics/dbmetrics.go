// Package dbmetrics wraps database/sql with query metrics and carries the
// active transaction through context, so repositories run inside a
// transaction when an enclosing use case opened one and directly against
// the pool otherwise.
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/villidata/newfork/pkg/metrics"
)

// Executor is the subset of database/sql used by repositories.
// Both *sql.DB, *sql.Tx and *DB satisfy it.
type Executor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type txContextKey struct{}

// WithTx returns a context carrying the given transaction
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext returns the transaction carried by ctx, if any
func TxFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx, ok
}

// IsInTransaction reports whether ctx carries an active transaction
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor returns the transaction from ctx when present, otherwise the
// repository's own executor.
func GetExecutor(ctx context.Context, fallback Executor) Executor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// DB wraps *sql.DB and records query latency metrics
type DB struct {
	*sql.DB
	collector *metrics.Metrics
	name      string
}

// WrapWithDefault wraps db with metric collection and starts a background
// goroutine sampling connection-pool stats until stopCh is closed.
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{DB: db, collector: collector, name: name}
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// QueryRowContext records latency for single-row queries
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.collector.DBQueryDuration.WithLabelValues("query_row").Observe(time.Since(start).Seconds())
	return row
}

// QueryContext records latency for multi-row queries
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.collector.DBQueryDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())
	return rows, err
}

// ExecContext records latency for statements
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.collector.DBQueryDuration.WithLabelValues("exec").Observe(time.Since(start).Seconds())
	return res, err
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.DB.Stats()
			d.collector.DBConnectionsOpen.WithLabelValues(d.name).Set(float64(stats.OpenConnections))
			d.collector.DBConnectionsIdle.WithLabelValues(d.name).Set(float64(stats.Idle))
			d.collector.DBConnectionsInUse.WithLabelValues(d.name).Set(float64(stats.InUse))
		}
	}
}
