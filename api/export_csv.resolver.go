package api

import (
	"github.com/gin-gonic/gin"
)

type exportCsvRequest struct {
	filterRequest

	// Converted exports display-currency amounts; off means the file
	// carries the source amounts exactly as parsed
	Converted bool `json:"converted"`
}

// exportCsv streams the filtered trade set as a CSV attachment. The same
// filter semantics as the dashboard apply, so what you see is what you
// download.
func (m *ApiHandler) exportCsv(c *gin.Context) {
	session, err := sessionFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	var requestBody exportCsvRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	input, err := requestBody.toDashboardInput()
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	result, err := m.DashboardService.BuildDashboard(c.Request.Context(), session, input)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	csvBytes, err := m.ExportService.TradesToCsv(result.Trades, requestBody.Converted)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="trades.csv"`)
	c.Data(200, "text/csv", csvBytes)
}
