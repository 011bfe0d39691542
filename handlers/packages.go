package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"manzafir/models"
)

type createPackageRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Destinations []string `json:"destinations" binding:"required,min=1"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Duration     string   `json:"duration" binding:"required"`
	Images       []string `json:"images"`
	Highlights   []string `json:"highlights"`
	Category     string   `json:"category" binding:"required"`
}

func (a *API) ListPackages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	packages, err := a.Packages.List(ctx)
	if err != nil {
		log.Printf("[packages] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}
	if packages == nil {
		packages = []models.TravelPackage{}
	}

	c.JSON(http.StatusOK, packages)
}

func (a *API) CreatePackage(c *gin.Context) {
	var req createPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg := models.TravelPackage{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Destinations: req.Destinations,
		Price:        req.Price,
		Duration:     req.Duration,
		Images:       req.Images,
		Highlights:   req.Highlights,
		Category:     req.Category,
		CreatedAt:    time.Now().UTC(),
	}
	if pkg.Images == nil {
		pkg.Images = []string{}
	}
	if pkg.Highlights == nil {
		pkg.Highlights = []string{}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := a.Packages.Insert(ctx, pkg); err != nil {
		log.Printf("[packages] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// InitSampleData seeds the catalogue with the demo packages, once. Repeat
// calls are a no-op when the collection already has documents.
func (a *API) InitSampleData(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	existing, err := a.Packages.Count(ctx)
	if err != nil {
		log.Printf("[packages] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize data"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Database already has %d packages", existing)})
		return
	}

	samples := samplePackages()
	for _, pkg := range samples {
		if err := a.Packages.Insert(ctx, pkg); err != nil {
			log.Printf("[packages] seed insert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize data"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Initialized %d sample packages", len(samples))})
}

func samplePackages() []models.TravelPackage {
	now := time.Now().UTC()
	return []models.TravelPackage{
		{
			ID:           uuid.NewString(),
			Name:         "Tropical Paradise - Maldives",
			Description:  "Luxury overwater villas in crystal clear waters with world-class diving and pristine beaches.",
			Destinations: []string{"Maldives", "Male", "Hulhumale"},
			Price:        2500.0,
			Duration:     "7 days / 6 nights",
			Images:       []string{"https://res.cloudinary.com/dqixczuzs/image/upload/v1/sample/maldives1.jpg"},
			Highlights:   []string{"Overwater villas", "Snorkeling & diving", "Spa treatments", "Sunset dinners"},
			Category:     "beaches",
			CreatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Name:         "Himalayan Adventure - Nepal",
			Description:  "Trek through stunning mountain landscapes and experience rich Buddhist culture in the heart of the Himalayas.",
			Destinations: []string{"Kathmandu", "Pokhara", "Annapurna Base Camp"},
			Price:        1200.0,
			Duration:     "12 days / 11 nights",
			Images:       []string{"https://res.cloudinary.com/dqixczuzs/image/upload/v1/sample/nepal1.jpg"},
			Highlights:   []string{"Mountain trekking", "Buddhist temples", "Local culture", "Sunrise views"},
			Category:     "mountains",
			CreatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Name:         "Historic Wonders - Egypt",
			Description:  "Explore ancient pyramids, tombs, and temples while cruising the legendary Nile River.",
			Destinations: []string{"Cairo", "Luxor", "Aswan", "Abu Simbel"},
			Price:        1800.0,
			Duration:     "10 days / 9 nights",
			Images:       []string{"https://res.cloudinary.com/dqixczuzs/image/upload/v1/sample/egypt1.jpg"},
			Highlights:   []string{"Great Pyramids", "Nile cruise", "Valley of Kings", "Ancient temples"},
			Category:     "historical",
			CreatedAt:    now,
		},
	}
}
