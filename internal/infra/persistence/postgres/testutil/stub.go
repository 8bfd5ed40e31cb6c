// Package testutil provides a keyed stub database for postgres store tests.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"
)

var stubSeq atomic.Int64

// StubConn records statements and keeps upserted rows keyed by their first column.
type StubConn struct {
	Execs      []string
	Rows       map[string]map[string][]driver.Value
	FailPing   bool
	FailExec   bool
	FailBegin  bool
	FailCommit bool
	RowsErr    error
}

// NewStubDB registers a sql.DB backed by an in-memory stub connection.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Rows: make(map[string]map[string][]driver.Value)}
	name := fmt.Sprintf("stubpg%d", stubSeq.Add(1))
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct {
	conn *StubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare implements driver.Conn.
func (c *StubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// Ping implements driver.Pinger.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

// BeginTx implements driver.ConnBeginTx.
func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, fmt.Errorf("begin fail")
	}
	return stubTx{conn: c}, nil
}

// ExecContext implements driver.ExecerContext. INSERT statements replace the
// row sharing the first column value.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.Execs = append(c.Execs, query)
	if c.FailExec {
		return nil, fmt.Errorf("exec fail")
	}
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT INTO") {
		return driver.RowsAffected(0), nil
	}
	table := tableAfter(query, "INTO ")
	if len(args) == 0 {
		return nil, fmt.Errorf("missing args for insert into %s", table)
	}
	row := make([]driver.Value, len(args))
	for i, a := range args {
		row[i] = a.Value
	}
	if c.Rows[table] == nil {
		c.Rows[table] = make(map[string][]driver.Value)
	}
	c.Rows[table][fmt.Sprint(row[0])] = row
	return driver.RowsAffected(1), nil
}

// QueryContext implements driver.QueryerContext and returns every row of the
// selected table ordered by key.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	table := tableAfter(query, "FROM ")
	upper := strings.ToUpper(query)
	cols := strings.Split(query[len("SELECT "):strings.Index(upper, " FROM ")], ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	keys := make([]string, 0, len(c.Rows[table]))
	for k := range c.Rows[table] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]driver.Value, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, c.Rows[table][k])
	}
	return &stubRows{cols: cols, rows: rows, err: c.RowsErr}, nil
}

func tableAfter(query, token string) string {
	idx := strings.Index(strings.ToUpper(query), token)
	if idx == -1 {
		return ""
	}
	rest := strings.TrimSpace(query[idx+len(token):])
	end := strings.IndexAny(rest, " (")
	if end == -1 {
		end = len(rest)
	}
	return strings.ToLower(rest[:end])
}

type stubTx struct {
	conn *StubConn
}

func (t stubTx) Commit() error {
	if t.conn.FailCommit {
		return fmt.Errorf("commit fail")
	}
	return nil
}

func (t stubTx) Rollback() error { return nil }

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
	err  error
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
