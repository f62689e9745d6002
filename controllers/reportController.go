package controllers

import (
	"net/http"

	"github.com/Kariuki/ebookstore-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type statusCount struct {
	StatusID uint  `json:"statusId"`
	Count    int64 `json:"count"`
}

type topEbook struct {
	EbookID uint   `json:"ebookId"`
	Name    string `json:"name"`
	Sold    int64  `json:"sold"`
}

// SalesSummary aggregates order counts, paid revenue, the per-status
// breakdown and the five best-selling ebooks.
func (c *ReportController) SalesSummary(ctx *gin.Context) {
	var orderCount int64
	if err := c.DB.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to build sales summary", err)
		return
	}

	var revenue float64
	if err := c.DB.Model(&models.Order{}).
		Where("status_id IN ?", []uint{models.OrderStatusPaid, models.OrderStatusCompleted}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to build sales summary", err)
		return
	}

	var byStatus []statusCount
	if err := c.DB.Model(&models.Order{}).
		Select("status_id, COUNT(*) AS count").
		Group("status_id").
		Scan(&byStatus).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to build sales summary", err)
		return
	}

	statuses := make([]gin.H, 0, len(byStatus))
	for _, s := range byStatus {
		statuses = append(statuses, gin.H{
			"statusId": s.StatusID,
			"status":   models.OrderStatusName(s.StatusID),
			"count":    s.Count,
		})
	}

	var topEbooks []topEbook
	if err := c.DB.Model(&models.OrderItem{}).
		Select("ebook_id, name, SUM(quantity) AS sold").
		Group("ebook_id, name").
		Order("sold DESC").
		Limit(5).
		Scan(&topEbooks).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to build sales summary", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"summary": gin.H{
			"orderCount":     orderCount,
			"paidRevenue":    revenue,
			"ordersByStatus": statuses,
			"topEbooks":      topEbooks,
		},
	})
}
