package catalog

import (
	"database/sql"
	"errors"

	myErr "studenthub/internal/types/errors"

	"go.uber.org/zap"
)

type ProjectDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewProjectDBRepository(db *sql.DB, l *zap.SugaredLogger) *ProjectDBRepository {
	return &ProjectDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (pr *ProjectDBRepository) GetByID(id string) (*Project, error) {
	var p Project

	query := `
	SELECT id, title, COALESCE(description, ''), COALESCE(price, 0), group_number, created_at
	FROM projects
	WHERE id = $1
	`

	err := pr.DB.QueryRow(query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.GroupNumber,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		pr.Logger.Errorf("Error getting project by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &p, nil
}

// List все проекты, новые первыми
func (pr *ProjectDBRepository) List() ([]Project, error) {
	query := `
	SELECT id, title, COALESCE(description, ''), COALESCE(price, 0), group_number, created_at
	FROM projects
	ORDER BY created_at DESC
	`

	rows, err := pr.DB.Query(query)
	if err != nil {
		pr.Logger.Errorf("Error listing projects: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.GroupNumber,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, myErr.ErrDBInternal
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		pr.Logger.Errorf("Error iterating projects: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return projects, nil
}
