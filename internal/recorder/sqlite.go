package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"TrendSentinel/internal/model"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trend_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			timeframe    TEXT NOT NULL,
			period       INTEGER NOT NULL,
			status       TEXT NOT NULL,
			points       INTEGER,
			as_of        INTEGER,
			last_close   REAL,
			di_plus      REAL,
			di_minus     REAL,
			dx           REAL,
			adx          REAL,
			trend_label  TEXT,
			signal_label TEXT,
			severity     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trend_symbol_ts ON trend_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS signal_changes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			from_signal TEXT,
			to_signal   TEXT,
			from_trend  TEXT,
			to_trend    TEXT,
			adx         REAL,
			price       REAL,
			as_of       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_symbol_ts ON signal_changes(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTrend(report *model.TrendReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := report.Result
	if res == nil {
		return fmt.Errorf("record trend %s: no result", report.Symbol)
	}
	last, _ := res.Last()
	var trend, signal, severity string
	if res.Signal != nil {
		trend = string(res.Signal.Trend)
		signal = string(res.Signal.Signal)
		severity = string(res.Signal.Severity)
	}

	_, err := r.db.Exec(`INSERT INTO trend_snapshots
		(timestamp, symbol, timeframe, period, status, points, as_of, last_close,
		 di_plus, di_minus, dx, adx, trend_label, signal_label, severity)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), report.Symbol, string(report.Timeframe), res.Period, string(res.Status),
		report.Points, report.AsOf.Unix(), report.LastClose,
		last.DIPlus, last.DIMinus, last.DX, last.ADX,
		trend, signal, severity,
	)
	if err != nil {
		return fmt.Errorf("record trend %s: %w", report.Symbol, err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignalChange(evt *SignalChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_changes
		(timestamp, symbol, from_signal, to_signal, from_trend, to_trend, adx, price, as_of)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), evt.Symbol,
		string(evt.FromSignal), string(evt.ToSignal),
		string(evt.FromTrend), string(evt.ToTrend),
		evt.ADX, evt.Price, evt.AsOf.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record signal change %s: %w", evt.Symbol, err)
	}
	return nil
}

// RecentTrends returns the latest snapshots of symbol, newest first.
func (r *SQLiteRecorder) RecentTrends(symbol string, limit int) ([]TrendRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT timestamp, symbol, timeframe, period, status, as_of, last_close,
		di_plus, di_minus, dx, adx, trend_label, signal_label
		FROM trend_snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query trends %s: %w", symbol, err)
	}
	defer rows.Close()

	var out []TrendRow
	for rows.Next() {
		var (
			row           TrendRow
			ts, asOf      int64
			tf, st, tr, s string
		)
		if err := rows.Scan(&ts, &row.Symbol, &tf, &row.Period, &st, &asOf, &row.LastClose,
			&row.DIPlus, &row.DIMinus, &row.DX, &row.ADX, &tr, &s); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		row.RecordedAt = time.Unix(ts, 0)
		row.AsOf = time.Unix(asOf, 0)
		row.Timeframe = model.Timeframe(tf)
		row.Status = model.DMIStatus(st)
		row.Trend = model.TrendLabel(tr)
		row.Signal = model.SignalLabel(s)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
