package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jwtpizza/pizza-service/config"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	"github.com/jwtpizza/pizza-service/internal/db"
	"github.com/xuri/excelize/v2"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [--yes]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && os.Args[2] == "--yes"

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database := db.New(cfg)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	menuRepo := repository.NewMenuRepository(database.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	items, err := readMenuFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	existing, err := menuRepo.GetMenu()
	if err != nil {
		log.Fatal("Failed to load current menu:", err)
	}
	items = withoutExisting(items, existing)

	fmt.Printf("Total menu items to import: %d\n", len(items))
	if len(items) == 0 {
		return
	}

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	for i := range items {
		if err := menuRepo.AddMenuItem(&items[i]); err != nil {
			log.Fatalf("Failed to add menu item %q: %v", items[i].Title, err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total menu items imported: %d\n", len(items))
}

// readMenuFromXLSX reads the first sheet. Columns: title, description, image, price.
func readMenuFromXLSX(filePath string) ([]model.MenuItem, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var items []model.MenuItem
	seen := make(map[string]bool) // 중복 제거용
	skipped := 0

	// 첫 행은 헤더
	for _, row := range rows[1:] {
		if len(row) < 4 {
			skipped++
			continue
		}

		title := strings.TrimSpace(row[0])
		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if title == "" || err != nil || price < 0 {
			skipped++
			continue
		}
		if seen[title] {
			skipped++
			continue
		}
		seen[title] = true

		items = append(items, model.MenuItem{
			Title:       title,
			Description: strings.TrimSpace(row[1]),
			Image:       strings.TrimSpace(row[2]),
			Price:       price,
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped rows: %d\n", skipped)
	}
	return items, nil
}

// withoutExisting drops items whose title is already on the menu.
func withoutExisting(items, existing []model.MenuItem) []model.MenuItem {
	titles := make(map[string]bool, len(existing))
	for _, item := range existing {
		titles[item.Title] = true
	}

	filtered := items[:0]
	for _, item := range items {
		if !titles[item.Title] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
