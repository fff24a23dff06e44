package main

import (
	"path/filepath"
	"testing"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeMenuSheet(t *testing.T, rows [][]interface{}) string {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "menu.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadMenuFromXLSX(t *testing.T) {
	path := writeMenuSheet(t, [][]interface{}{
		{"title", "description", "image", "price"},
		{"Veggie", "A garden of delight", "pizza1.png", "0.0038"},
		{"Pepperoni", "Spicy treat", "pizza2.png", "0.0042"},
		{"Veggie", "duplicate", "pizza1.png", "0.0038"},
		{"", "no title", "pizza3.png", "0.001"},
		{"Margarita", "bad price", "pizza3.png", "cheap"},
		{"Crusty", "short row"},
	})

	items, err := readMenuFromXLSX(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, model.MenuItem{Title: "Veggie", Description: "A garden of delight", Image: "pizza1.png", Price: 0.0038}, items[0])
	assert.Equal(t, "Pepperoni", items[1].Title)
}

func TestReadMenuFromXLSX_MissingFile(t *testing.T) {
	_, err := readMenuFromXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestWithoutExisting(t *testing.T) {
	items := []model.MenuItem{{Title: "Veggie"}, {Title: "Pepperoni"}, {Title: "Crusty"}}
	existing := []model.MenuItem{{ID: 1, Title: "Pepperoni"}}

	filtered := withoutExisting(items, existing)
	assert.Equal(t, []model.MenuItem{{Title: "Veggie"}, {Title: "Crusty"}}, filtered)
}
