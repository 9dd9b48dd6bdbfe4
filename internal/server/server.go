package server

import (
	"CarmartScraper/internal/database"
	"CarmartScraper/internal/models"
	"CarmartScraper/pkg/config"
	"database/sql"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxLimit caps the page size of GET /cars.
const maxLimit = 100

// NewRouter exposes the stored snapshots read-only.
func NewRouter(repo *database.DBRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/runs", runsHandler(repo))
	r.GET("/cars", carsHandler(repo))
	return r
}

// Start serves the API until the listener fails.
func Start(repo *database.DBRepository, cfg *config.Config) error {
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting API server on port %s", port)
	log.Printf("Endpoints available at http://localhost:%s/cars and /runs", port)
	return NewRouter(repo).Run(":" + port)
}

func runsHandler(repo *database.DBRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := repo.GetRuns()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get runs"})
			return
		}
		if runs == nil {
			runs = []models.RunSummary{}
		}
		c.JSON(http.StatusOK, gin.H{"data": runs})
	}
}

func carsHandler(repo *database.DBRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Parse Pagination Parameters
		page, _ := strconv.Atoi(c.Query("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		if limit < 1 {
			limit = 20 // Default limit
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		if page > math.MaxInt32/limit {
			page = math.MaxInt32 / limit
		}
		offset := (page - 1) * limit

		// 2. Resolve the run, newest by default
		var (
			run *models.RunSummary
			err error
		)
		if id := c.Query("run"); id != "" {
			run, err = repo.GetRun(id)
		} else {
			run, err = repo.LatestRun()
		}
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No such run"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get run"})
			return
		}

		// 3. Get Total Count for Pagination
		total, err := repo.CountCars(run.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cars"})
			return
		}
		totalPages := int(math.Ceil(float64(total) / float64(limit)))

		// 4. Get Paginated Cars
		cars, err := repo.GetCars(models.CarFilters{RunID: run.ID, Limit: limit, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cars"})
			return
		}

		c.JSON(http.StatusOK, models.CarsResponse{
			Run:  *run,
			Data: cars,
			Pagination: models.Pagination{
				TotalPages:  totalPages,
				CurrentPage: page,
			},
		})
	}
}
