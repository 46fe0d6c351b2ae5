package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"collageserver/internal/dto"
	"collageserver/internal/logger"
	"collageserver/internal/repository"
)

// ListCollagesHandler lists indexed collages, newest first, with pagination
// and optional date filtering. Response is JSON of type dto.CollagesData.
func ListCollagesHandler(collages repository.CollageRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), 24)

		filter := &dto.CollageFilters{
			CreatedAfter:  parseDate(q.Get("dateAfter")),
			CreatedBefore: parseDate(q.Get("dateBefore")),
			Limit:         limit,
			Offset:        (page - 1) * limit,
		}

		results, err := collages.GetAll(filter)
		if err != nil {
			logger.Error("Error querying collages: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		totalCount, err := collages.GetTotalCount(filter)
		if err != nil {
			logger.Error("Error counting collages: %v", err)
			totalCount = len(results)
		}

		infos := make([]dto.CollageInfo, 0, len(results))
		for _, col := range results {
			infos = append(infos, dto.CollageInfo{
				Filename:    col.Filename,
				CreatedAt:   col.CreatedAt,
				SourceCount: len(col.SourceImageIDs),
			})
		}

		data := dto.CollagesData{
			Collages:    infos,
			Length:      totalCount,
			TotalPages:  (totalCount + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// GetCollageStatsHandler returns collage index statistics.
func GetCollageStatsHandler(collages repository.CollageRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := collages.GetStats()
		if err != nil {
			logger.Error("Failed to get collage stats: %v", err)
			http.Error(w, "Failed to retrieve stats", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

// helpers

// atoiDefault converts string to int or returns a default when conversion
// fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

// parseDate parses a date string in the format "2006-01-02" from the request
// (HTML input format).
func parseDate(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}
	}
	return t
}
