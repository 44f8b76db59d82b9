package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
)

// ListProducts lists marketplace products
func (h *handler) ListProducts(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	query, err := ParseProductQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	products, err := h.settlement.ListProducts(c.Request.Context(), caller, *query)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(products))
}

// CreatePurchase reserves inventory and escrows the buyer's funds
func (h *handler) CreatePurchase(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req settlement.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.settlement.CreatePurchase(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create purchase", zap.String("product_id", req.ProductID))
		return
	}

	respondOK(c, http.StatusCreated, order)
}

// ListPurchases lists the caller's purchases
func (h *handler) ListPurchases(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	params, err := ParseStatusQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	purchases, err := h.settlement.ListPurchases(c.Request.Context(), caller, domain.PurchaseStatus(params.Status))
	if err != nil {
		respondError(c, err, "Failed to list purchases")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(purchases))
}

// CancelPurchase refunds a held escrow and restores inventory
func (h *handler) CancelPurchase(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	purchaseID := c.Param("id")
	if purchaseID == "" {
		respondBadRequest(c, "Purchase ID is required")
		return
	}

	order, err := h.settlement.CancelPurchase(c.Request.Context(), caller, purchaseID)
	if err != nil {
		respondError(c, err, "Failed to cancel purchase", zap.String("purchase_id", purchaseID))
		return
	}

	respondOK(c, http.StatusOK, order)
}

// ListEscrows lists the caller's escrows
func (h *handler) ListEscrows(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	params, err := ParseStatusQuery(c)
	if err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	escrows, err := h.settlement.ListEscrows(c.Request.Context(), caller, domain.EscrowStatus(params.Status))
	if err != nil {
		respondError(c, err, "Failed to list escrows")
		return
	}

	respondOK(c, http.StatusOK, orEmpty(escrows))
}

// ReleaseEscrow releases a held escrow to the producer
func (h *handler) ReleaseEscrow(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req settlement.ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.settlement.ReleaseEscrow(c.Request.Context(), caller, req.EscrowID)
	if err != nil {
		respondError(c, err, "Failed to release escrow", zap.String("escrow_id", req.EscrowID))
		return
	}

	respondOK(c, http.StatusOK, order)
}

// GetWallet returns the caller's wallet
func (h *handler) GetWallet(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	wallet, err := h.settlement.GetWallet(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to get wallet")
		return
	}

	respondOK(c, http.StatusOK, wallet)
}

// Deposit credits a buyer's wallet
func (h *handler) Deposit(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req settlement.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	txn, err := h.settlement.Deposit(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to deposit", zap.String("buyer_id", req.BuyerID))
		return
	}

	respondOK(c, http.StatusCreated, txn)
}
