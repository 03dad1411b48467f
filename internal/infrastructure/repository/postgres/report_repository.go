package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/homahealth/labscan/internal/core/domain"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026052401)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS lab_reports (
	id TEXT PRIMARY KEY,
	patient_id TEXT,
	patient_name TEXT,
	report_type TEXT,
	files JSONB NOT NULL DEFAULT '[]'::jsonb,
	results JSONB,
	status TEXT NOT NULL,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lab_reports_status ON lab_reports(status);
CREATE INDEX IF NOT EXISTS idx_lab_reports_patient_id ON lab_reports(patient_id);
CREATE INDEX IF NOT EXISTS idx_lab_reports_created_at ON lab_reports(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	filesJSON, err := json.Marshal(report.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO lab_reports (
	id, patient_id, patient_name, report_type, files, results, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		report.ID, report.PatientID, report.PatientName, report.ReportType, filesJSON,
		nil, string(report.Status), report.Error, report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, patient_id, patient_name, report_type, files, results, status, error_message, created_at, updated_at
FROM lab_reports
WHERE id = $1
`, id)

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrReportNotFound, "get report", fmt.Errorf("id %s", id))
		}
		return nil, err
	}
	return report, nil
}

func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, patient_id, patient_name, report_type, files, results, status, error_message, created_at, updated_at
FROM lab_reports
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0, limit)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE lab_reports
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	return requireRow(res, "update report status", id)
}

func (r *ReportRepository) SaveResults(ctx context.Context, id string, status domain.ReportStatus, results *domain.ReportResults) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE lab_reports
SET results = $2, status = $3, error_message = '', updated_at = $4
WHERE id = $1
`, id, resultsJSON, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save report results: %w", err)
	}
	return requireRow(res, "save report results", id)
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lab_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return requireRow(res, "delete report", id)
}

func requireRow(res sql.Result, op, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrReportNotFound, op, fmt.Errorf("id %s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var report domain.Report
	var filesRaw []byte
	var resultsRaw []byte
	var status string

	err := row.Scan(
		&report.ID, &report.PatientID, &report.PatientName, &report.ReportType,
		&filesRaw, &resultsRaw, &status, &report.Error, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	if err := json.Unmarshal(filesRaw, &report.Files); err != nil {
		return nil, fmt.Errorf("unmarshal files: %w", err)
	}
	if len(resultsRaw) > 0 {
		if err := json.Unmarshal(resultsRaw, &report.Results); err != nil {
			return nil, fmt.Errorf("unmarshal results: %w", err)
		}
	}
	report.Status = domain.ReportStatus(status)
	return &report, nil
}
