package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/custody"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// SubmitHarvest records a farmer's harvest batch
func (h *handler) SubmitHarvest(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req custody.HarvestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.custody.SubmitHarvest(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to submit harvest")
		return
	}

	respondOK(c, http.StatusCreated, result)
}

// GetProvenance returns the custody chain of a batch
func (h *handler) GetProvenance(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	harvestID := c.Param("id")
	if harvestID == "" {
		respondBadRequest(c, "Harvest ID is required")
		return
	}

	provenance, err := h.custody.GetProvenance(c.Request.Context(), caller, harvestID)
	if err != nil {
		respondError(c, err, "Failed to get provenance", zap.String("harvest_id", harvestID))
		return
	}

	respondOK(c, http.StatusOK, provenance)
}

// StartTransport records a pickup
func (h *handler) StartTransport(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req custody.TransportStartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.custody.StartTransport(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to start transport", zap.String("harvest_id", req.HarvestID))
		return
	}

	respondOK(c, http.StatusCreated, result)
}

// CompleteTransport records a hand-over at the warehouse
func (h *handler) CompleteTransport(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req custody.TransportCompleteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.custody.CompleteTransport(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to complete transport", zap.String("job_id", req.JobID))
		return
	}

	respondOK(c, http.StatusOK, result)
}

// ListWarehouseDeliveries lists deliveries by status
func (h *handler) ListWarehouseDeliveries(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	params, err := ParseStatusQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	deliveries, err := h.custody.ListWarehouseDeliveries(c.Request.Context(), caller, domain.DeliveryStatus(params.Status))
	if err != nil {
		respondError(c, err, "Failed to list deliveries")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(deliveries))
}

// ConfirmWarehouseReceipt receives a delivery into inventory
func (h *handler) ConfirmWarehouseReceipt(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req custody.WarehouseReceiptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.custody.ConfirmWarehouseReceipt(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to confirm warehouse receipt", zap.String("delivery_id", req.DeliveryID))
		return
	}

	respondOK(c, http.StatusOK, result)
}

// ListInventoryLots lists warehouse stock by status
func (h *handler) ListInventoryLots(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	params, err := ParseStatusQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	lots, err := h.custody.ListInventoryLots(c.Request.Context(), caller, domain.InventoryStatus(params.Status))
	if err != nil {
		respondError(c, err, "Failed to list inventory")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(lots))
}

// ListInspections lists the inspection history
func (h *handler) ListInspections(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	query, err := ParseInspectionQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	inspections, err := h.custody.ListInspections(c.Request.Context(), caller, *query)
	if err != nil {
		respondError(c, err, "Failed to list inspections")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(inspections))
}

// GetReportStats summarises inspections over a period
func (h *handler) GetReportStats(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var params ReportQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	stats, err := h.custody.GetReportStats(c.Request.Context(), caller, domain.ReportPeriod(params.Period))
	if err != nil {
		respondError(c, err, "Failed to get report stats", zap.String("period", params.Period))
		return
	}

	respondOK(c, http.StatusOK, stats)
}

// VerifyCustodyEvent re-hashes a stored custody event
func (h *handler) VerifyCustodyEvent(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if eventID == "" {
		respondBadRequest(c, "Event ID is required")
		return
	}

	verification, err := h.custody.VerifyEvent(c.Request.Context(), caller, eventID)
	if err != nil {
		respondError(c, err, "Failed to verify custody event", zap.String("event_id", eventID))
		return
	}

	respondOK(c, http.StatusOK, verification)
}

// ListReconciliationItems lists ledger/local discrepancies
func (h *handler) ListReconciliationItems(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	query, err := ParseReconciliationQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	items, err := h.custody.ListReconciliationItems(c.Request.Context(), caller, *query)
	if err != nil {
		respondError(c, err, "Failed to list reconciliation items")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(items))
}

// ResolveReconciliationItem closes a discrepancy
func (h *handler) ResolveReconciliationItem(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req custody.ResolveReconciliationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.custody.ResolveReconciliationItem(c.Request.Context(), caller, req); err != nil {
		respondError(c, err, fmt.Sprintf("Failed to resolve reconciliation item %s", req.ID))
		return
	}

	respondOK(c, http.StatusOK, gin.H{"id": req.ID, "resolved": true})
}
