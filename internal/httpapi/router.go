package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving the reporting endpoints.
func NewRouter(reports ReportService) *gin.Engine {
	h := &handlers{reports: reports}

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/items", h.fetchItems)
	router.POST("/sales", h.addSales)
	router.GET("/sales-summary", h.salesSummary)
	router.GET("/average-sales", h.averageSales)
	router.GET("/sales-report", h.salesReport)
	router.GET("/trend-analysis", h.trendAnalysis)
	router.GET("/sales-comparison", h.salesComparison)
	router.POST("/add-items", h.addItems)

	return router
}
