package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"disease-diagnosis-service/internal/core/domain"
	output "disease-diagnosis-service/internal/core/ports/output"
)

const loadReportSchema = `
	CREATE TABLE IF NOT EXISTS artifact_load_report (
		id           UUID PRIMARY KEY,
		instance_id  UUID NOT NULL,
		domain       TEXT NOT NULL,
		role         TEXT NOT NULL,
		path         TEXT NOT NULL,
		status       TEXT NOT NULL,
		detail       TEXT NOT NULL DEFAULT '',
		checksum     TEXT NOT NULL DEFAULT '',
		size         BIGINT NOT NULL DEFAULT 0,
		n_features   INTEGER NOT NULL DEFAULT 0,
		loaded_at    TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_artifact_load_report_loaded_at
		ON artifact_load_report (loaded_at DESC);
`

type loadReportRepo struct {
	pool *pgxpool.Pool
}

// NewLoadReportRepository creates a new LoadReportRepository
func NewLoadReportRepository(pool *pgxpool.Pool) output.LoadReportRepository {
	return &loadReportRepo{pool: pool}
}

// EnsureLoadReportSchema creates the load report table when it is missing.
func EnsureLoadReportSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, loadReportSchema); err != nil {
		return fmt.Errorf("ensure load report schema: %w", err)
	}
	return nil
}

func (r *loadReportRepo) SaveAll(ctx context.Context, reports []domain.LoadReport) error {
	if len(reports) == 0 {
		return nil
	}

	query := `
		INSERT INTO artifact_load_report
			(id, instance_id, domain, role, path, status, detail, checksum, size, n_features, loaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save load reports: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, rep := range reports {
		batch.Queue(query,
			rep.ID, rep.InstanceID,
			string(rep.Domain), string(rep.Role), rep.Path,
			string(rep.Status), rep.Detail, rep.Checksum,
			rep.Size, rep.NumFeatures, rep.LoadedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range reports {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("save load report: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("save load reports: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit load reports: %w", err)
	}
	return nil
}

func (r *loadReportRepo) ListRecent(ctx context.Context, limit int) ([]domain.LoadReport, error) {
	query := `
		SELECT id, instance_id, domain, role, path, status, detail, checksum, size, n_features, loaded_at
		FROM artifact_load_report
		ORDER BY loaded_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list load reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.LoadReport, 0, limit)
	for rows.Next() {
		var rep domain.LoadReport
		var domainName, role, status string
		if err := rows.Scan(
			&rep.ID, &rep.InstanceID,
			&domainName, &role, &rep.Path,
			&status, &rep.Detail, &rep.Checksum,
			&rep.Size, &rep.NumFeatures, &rep.LoadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan load report: %w", err)
		}
		rep.Domain = domain.Domain(domainName)
		rep.Role = domain.ArtifactRole(role)
		rep.Status = domain.LoadStatus(status)
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load reports: %w", err)
	}
	return reports, nil
}

func (r *loadReportRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
