package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Allen-Brian/AGRICHAIN/internal/custody"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
)

const MAX_PAGE_SIZE = 500

const DEFAULT_RECONCILIATION_LIMIT = 100

// StatusQueryParams holds the status filter shared by listing endpoints
type StatusQueryParams struct {
	Status string `form:"status"`
}

// ParseStatusQuery parses ?status= for listing endpoints
func ParseStatusQuery(c *gin.Context) (*StatusQueryParams, error) {
	var params StatusQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseProductQuery parses query parameters for GET /products
func ParseProductQuery(c *gin.Context) (*settlement.ProductQuery, error) {
	var params settlement.ProductQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseReconciliationQuery parses query parameters for GET /reconciliation
func ParseReconciliationQuery(c *gin.Context) (*custody.ReconciliationQuery, error) {
	var params custody.ReconciliationQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = DEFAULT_RECONCILIATION_LIMIT
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}

const DEFAULT_INSPECTION_LIMIT = 100

// ParseInspectionQuery parses query parameters for GET /warehouse/inspections
func ParseInspectionQuery(c *gin.Context) (*custody.InspectionQuery, error) {
	var params custody.InspectionQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = DEFAULT_INSPECTION_LIMIT
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}

// ReportQueryParams holds the period of GET /warehouse/reports/stats
type ReportQueryParams struct {
	Period string `form:"period"`
}
