package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/extract"

	"github.com/gin-gonic/gin"
)

type importTradesRequest struct {
	Html string `json:"html"`
}

type importTradesResponse struct {
	TradeCount  int `json:"tradeCount"`
	SkippedRows int `json:"skippedRows"`
}

// importTrades replaces the session's dataset with the trades found in the
// pasted markup. A paste with zero usable rows is a 422, not an empty
// dashboard; the caller must be able to tell "no trades" from "bad paste".
func (m *ApiHandler) importTrades(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	defer func() {
		endProfile()
		logProfile("importTrades", profile)
	}()

	profile.StartNewSpan("parse request")
	session, err := sessionFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	var requestBody importTradesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if strings.TrimSpace(requestBody.Html) == "" {
		returnErrorJsonCode(fmt.Errorf("html is required"), c, 400)
		return
	}

	profile.StartNewSpan("import trades")
	result, err := m.DashboardService.ImportTrades(c.Request.Context(), session, requestBody.Html)
	if err != nil {
		var extractionErr extract.ExtractionError
		if errors.As(err, &extractionErr) {
			returnErrorJsonCode(err, c, 422)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, importTradesResponse{
		TradeCount:  result.TradeCount,
		SkippedRows: result.SkippedRows,
	})
}
