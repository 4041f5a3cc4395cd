package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ozonegraphics/invoice-service/internal/model"
	"github.com/ozonegraphics/invoice-service/internal/repository"
	"github.com/ozonegraphics/invoice-service/internal/service"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	invoices service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/invoices", h.CreateInvoice)
	router.GET("/v1/invoices", h.ListInvoices)
	router.GET("/v1/invoices/:id", h.GetInvoice)
	router.PATCH("/v1/invoices/:id/payment", h.UpdatePayment)
	router.GET("/v1/invoices/:id/thank-you", h.ThankYouMessage)
	router.GET("/v1/invoices/:id/pdf", h.DownloadInvoicePDF)
	router.GET("/v1/invoices/:id/receipt", h.DownloadReceiptPDF)
}

// CreateInvoice handles a request to create a new invoice
// @Summary Create an invoice
// @Description Create a new invoice with line items; totals are computed server-side
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.CreateInvoiceRequest true "Invoice to create"
// @Success 201 {object} model.InvoiceDTO "Created invoice"
// @Failure 400 {object} model.ErrorResponse "Validation failure"
// @Failure 500 {object} model.ErrorResponse "Storage failure"
// @Router /v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var request model.CreateInvoiceRequest
	if err := bindJSON(c, &request); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	input := service.CreateInvoiceInput{
		ClientName: request.ClientName,
		IssueDate:  request.IssueDate,
		DueDate:    request.DueDate,
		Items:      request.ToDomainItems(),
		Discount:   request.Discount,
	}

	invoice, err := h.invoices.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail(validationErr.Field, validationErr.Message))
			return
		}
		log.Printf("Failed to create invoice: %v", err)
		respondInternalServerError(c, ErrStorageFailure)
		return
	}

	var dto model.InvoiceDTO
	dto.FromDomain(invoice)
	respondCreated(c, dto)
}

// ListInvoices handles a request to list all invoices
// @Summary List invoices
// @Description List all invoices ordered by creation time, most recent first
// @Tags invoices
// @Produce json
// @Success 200 {object} model.InvoiceListResponse "All invoices"
// @Failure 500 {object} model.ErrorResponse "Storage failure"
// @Router /v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.ListInvoices(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list invoices: %v", err)
		respondInternalServerError(c, ErrStorageFailure)
		return
	}

	response := model.InvoiceListResponse{
		Data: make([]model.InvoiceDTO, len(invoices)),
	}
	for i := range invoices {
		response.Data[i].FromDomain(&invoices[i])
	}

	respondOK(c, response)
}

// GetInvoice handles a request for a single invoice
// @Summary Get an invoice
// @Description Get a single invoice by its identifier
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} model.InvoiceDTO "Invoice"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Storage failure"
// @Router /v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoices.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.respondInvoiceError(c, err, "get invoice")
		return
	}

	var dto model.InvoiceDTO
	dto.FromDomain(invoice)
	respondOK(c, dto)
}

// UpdatePayment handles a payment-status update for an invoice
// @Summary Record a payment
// @Description Update the paid amount; the payment status is derived from it
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param payment body model.UpdatePaymentRequest true "Payment update"
// @Success 200 {object} model.InvoiceDTO "Updated invoice"
// @Failure 400 {object} model.ErrorResponse "Validation failure"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Storage failure"
// @Router /v1/invoices/{id}/payment [patch]
func (h *InvoiceHandler) UpdatePayment(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var request model.UpdatePaymentRequest
	if err := bindJSON(c, &request); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoices.RecordPayment(c.Request.Context(), id, request.PaidAmount)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail(validationErr.Field, validationErr.Message))
			return
		}
		h.respondInvoiceError(c, err, "update payment")
		return
	}

	var dto model.InvoiceDTO
	dto.FromDomain(invoice)
	respondOK(c, dto)
}

// ThankYouMessage handles a request for a client thank-you message
// @Summary Get a thank-you message
// @Description Generate a thank-you message for the invoice's client; falls back to a fixed string when generation is unavailable
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} model.ThankYouResponse "Thank-you message"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Storage failure"
// @Router /v1/invoices/{id}/thank-you [get]
func (h *InvoiceHandler) ThankYouMessage(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	message, err := h.invoices.ThankYouMessage(c.Request.Context(), id)
	if err != nil {
		h.respondInvoiceError(c, err, "generate thank-you message")
		return
	}

	respondOK(c, model.ThankYouResponse{Message: message})
}

// DownloadInvoicePDF handles a request to export an invoice as PDF
// @Summary Download the invoice PDF
// @Description Export the invoice as a PDF document
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary "Invoice PDF"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Rendering or storage failure"
// @Router /v1/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadInvoicePDF(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	document, err := h.invoices.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		h.respondInvoiceError(c, err, "render invoice PDF")
		return
	}

	respondPDF(c, "invoice-"+shortFileID(id)+".pdf", document)
}

// DownloadReceiptPDF handles a request to export a payment receipt as PDF
// @Summary Download the receipt PDF
// @Description Export the payment receipt as a PDF document
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary "Receipt PDF"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Rendering or storage failure"
// @Router /v1/invoices/{id}/receipt [get]
func (h *InvoiceHandler) DownloadReceiptPDF(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	document, err := h.invoices.ReceiptPDF(c.Request.Context(), id)
	if err != nil {
		h.respondInvoiceError(c, err, "render receipt PDF")
		return
	}

	respondPDF(c, "receipt-"+shortFileID(id)+".pdf", document)
}

// respondInvoiceError maps service/repository errors onto HTTP responses.
// Not-found is a distinct result; everything else is a storage or
// rendering failure.
func (h *InvoiceHandler) respondInvoiceError(c *gin.Context, err error, op string) {
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		respondNotFound(c, ErrInvoiceNotFound)
		return
	}
	log.Printf("Failed to %s: %v", op, err)
	respondInternalServerError(c, ErrStorageFailure)
}

// shortFileID returns the identifier prefix used in download filenames
func shortFileID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
