package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"collageserver/internal/model"
	"collageserver/internal/repository/sqlite"
)

// Rebuilds the collage index from the files on disk, for databases lost or
// created after collages already existed.
func main() {
	collagesDir := flag.String("collages", "collages", "Directory containing collage files")
	dbPath := flag.String("db", filepath.Join("data", "collages.db"), "Database path")
	flag.Parse()

	fmt.Printf("Indexing collages from %s into %s\n", *collagesDir, *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewCollageRepository(db)

	files, err := os.ReadDir(*collagesDir)
	if err != nil {
		log.Fatalf("Failed to read collages directory: %v", err)
	}

	indexed, skipped := 0, 0
	for _, file := range files {
		if file.IsDir() {
			skipped++
			continue
		}

		createdAt, err := parseCollageName(file.Name())
		if err != nil {
			log.Printf("Skipping %s: %v", file.Name(), err)
			skipped++
			continue
		}

		_, err = repo.Insert(&model.Collage{
			Filename:  file.Name(),
			FilePath:  filepath.Join(*collagesDir, file.Name()),
			CreatedAt: createdAt,
		})
		if err != nil {
			// Already-indexed files hit the UNIQUE constraint; count as skipped.
			skipped++
			continue
		}
		indexed++
	}

	fmt.Printf("Done: %d indexed, %d skipped\n", indexed, skipped)
}

// parseCollageName extracts the creation time from names in the pattern
// collage_20060102_150405.jpg.
func parseCollageName(filename string) (time.Time, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	stamp, ok := strings.CutPrefix(base, "collage_")
	if !ok {
		return time.Time{}, fmt.Errorf("not a collage filename: %s", filename)
	}
	return time.ParseInLocation("20060102_150405", stamp, time.Local)
}
