package analytics

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UpdatePopularity(ctx context.Context, weights map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	for projectID, weight := range weights {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO project_popularity (project_id, weight)
			VALUES ($1, $2)
			ON CONFLICT (project_id)
			DO UPDATE SET weight = project_popularity.weight + EXCLUDED.weight
		`, projectID, weight)

		if err != nil {
			r.logger.Errorf("Failed to update popularity of project %s: %v", projectID, err)
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetTopProjects(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT project_id
		FROM project_popularity
		WHERE weight > 0
		ORDER BY weight DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var projectID string
		if err := rows.Scan(&projectID); err != nil {
			return nil, err
		}
		projects = append(projects, projectID)
	}

	return projects, rows.Err()
}
