package catalog

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"studenthub/internal/cart"
	myErr "studenthub/internal/types/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const selectProject = "SELECT id, title, COALESCE(description, ''), COALESCE(price, 0), group_number, created_at FROM projects"

var projectColumns = []string{"id", "title", "description", "price", "group_number", "created_at"}

func setup(t *testing.T) (*ProjectDBRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProjectDBRepository(db, zaptest.NewLogger(t).Sugar())

	return repo, mock, func() { db.Close() }
}

func TestProjectDBRepository_GetByID(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		expected    *Project
		expectError error
	}{
		{
			name: "успешное получение",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectProject + " WHERE id = $1")).
					WithArgs("p1").
					WillReturnRows(sqlmock.NewRows(projectColumns).
						AddRow("p1", "Line follower robot", "Arduino based", 1500, 7, created))
			},
			expected: &Project{
				ID:          "p1",
				Title:       "Line follower robot",
				Description: "Arduino based",
				Price:       1500,
				GroupNumber: 7,
				CreatedAt:   created,
			},
		},
		{
			name: "не найден",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectProject + " WHERE id = $1")).
					WithArgs("p1").
					WillReturnError(sql.ErrNoRows)
			},
			expectError: myErr.ErrNotFound,
		},
		{
			name: "ошибка БД",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectProject + " WHERE id = $1")).
					WithArgs("p1").
					WillReturnError(errors.New("connection reset"))
			},
			expectError: myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setup(t)
			defer cleanup()

			tt.mock(mock)

			got, err := repo.GetByID("p1")
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProjectDBRepository_List(t *testing.T) {
	repo, mock, cleanup := setup(t)
	defer cleanup()

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectProject + " ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p2", "Smart energy meter", "", 800, 3, created).
			AddRow("p1", "Line follower robot", "Arduino based", 1500, 7, created))

	got, err := repo.List()
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, int64(1500), got[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDBRepository_ListEmpty(t *testing.T) {
	repo, mock, cleanup := setup(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectProject)).
		WillReturnRows(sqlmock.NewRows(projectColumns))

	got, err := repo.List()
	assert.NoError(t, err)
	assert.Equal(t, []Project{}, got)
}

func TestProjectDBRepository_ListError(t *testing.T) {
	repo, mock, cleanup := setup(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectProject)).
		WillReturnError(errors.New("db failure"))

	got, err := repo.List()
	assert.Nil(t, got)
	assert.ErrorIs(t, err, myErr.ErrDBInternal)
}

func TestProject_CartItem(t *testing.T) {
	p := Project{ID: "p1", Title: "Line follower robot", Price: 1500}

	assert.Equal(t, cart.CartItem{ID: "p1", Name: "Line follower robot", Price: 1500}, p.CartItem())
}
