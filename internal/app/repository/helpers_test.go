package repository

import (
	"testing"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/db"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "third page", page: 3, pageSize: 10, want: 20},
		{name: "zero page treated as first", page: 0, pageSize: 10, want: 0},
		{name: "negative page treated as first", page: -4, pageSize: 5, want: 0},
		{name: "page size one", page: 7, pageSize: 1, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetOffset(tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestGetID(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	franchise := &model.Franchise{Name: "pizzaPocket"}
	require.NoError(t, testDB.Create(franchise).Error)

	id, err := getID(testDB, "franchises", "name", "pizzaPocket")
	require.NoError(t, err)
	assert.Equal(t, franchise.ID, id)

	_, err = getID(testDB, "franchises", "name", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")
}
