// Package sqlite provides SQLite database writing for lipidome estimation runs
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/OxLipidome/pkg/report"
)

const (
	// Date format for RunTable and HeaderTable (ISO 8601)
	runDateFormat = "2006-01-02T15:04:05Z07:00"
	// Schema version written to HeaderTable
	schemaVersion = 1
)

// Writer handles writing estimation runs to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	runStmt    *sql.Stmt
	resultStmt *sql.Stmt
	chainStmt  *sql.Stmt
	runs       int
	closed     bool
	now        func() time.Time
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		now:        time.Now,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS RunTable (
		RunId TEXT PRIMARY KEY,
		CreationDate TEXT,
		Site TEXT,
		SiteSpecific BOOL,
		FattyAcids INTEGER,
		OxidizableFattyAcids INTEGER
	);

	CREATE TABLE IF NOT EXISTS ResultTable (
		RunId TEXT REFERENCES RunTable(RunId),
		Metric TEXT,
		Value TEXT
	);

	CREATE TABLE IF NOT EXISTS ChainTable (
		RunId TEXT REFERENCES RunTable(RunId),
		DoubleBonds INTEGER,
		FattyAcids INTEGER,
		Sites INTEGER,
		OAP TEXT,
		OCP TEXT,
		Cyclic TEXT,
		Total TEXT
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		NoofRuns INTEGER
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.runStmt, err = w.db.Prepare(`
		INSERT INTO RunTable (
			RunId, CreationDate, Site, SiteSpecific, FattyAcids, OxidizableFattyAcids
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare run statement: %w", err)
	}

	w.resultStmt, err = w.db.Prepare(`
		INSERT INTO ResultTable (RunId, Metric, Value) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result statement: %w", err)
	}

	w.chainStmt, err = w.db.Prepare(`
		INSERT INTO ChainTable (
			RunId, DoubleBonds, FattyAcids, Sites, OAP, OCP, Cyclic, Total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare chain statement: %w", err)
	}

	return nil
}

// WriteRun writes a single run with its metrics and chain breakdown and
// returns the generated run id. Counts are stored as decimal text so values
// beyond 64 bits survive.
func (w *Writer) WriteRun(run *report.Run) (string, error) {
	runID := uuid.NewString()
	created := w.now().UTC().Format(runDateFormat)

	_, err := w.runStmt.Exec(
		runID,                    // RunId
		created,                  // CreationDate
		string(run.Site),         // Site
		run.SiteSpecific,         // SiteSpecific
		run.FattyAcids,           // FattyAcids
		run.OxidizableFattyAcids, // OxidizableFattyAcids
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, metric := range run.Metrics() {
		if metric.Value == nil {
			continue
		}
		if _, err := w.resultStmt.Exec(runID, metric.Name, metric.Value.String()); err != nil {
			return "", fmt.Errorf("failed to insert result %s: %w", metric.Name, err)
		}
	}

	for _, chain := range run.Chains {
		_, err := w.chainStmt.Exec(
			runID,
			chain.DoubleBonds,
			chain.FattyAcids,
			chain.Sites,
			chain.Additions.String(),
			chain.Cleavages.String(),
			chain.Cyclic.String(),
			chain.Total.String(),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert chain breakdown for %d double bonds: %w", chain.DoubleBonds, err)
		}
	}

	w.runs++
	return runID, nil
}

// Path returns the database file the writer writes to
func (w *Writer) Path() string {
	return w.outputPath
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, NoofRuns)
		VALUES (?, ?, ?)
	`, schemaVersion, w.now().UTC().Format(runDateFormat), w.runs)
	if err != nil {
		w.db.Close()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Close prepared statements
	for _, stmt := range []*sql.Stmt{w.runStmt, w.resultStmt, w.chainStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
