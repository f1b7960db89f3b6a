package handler

import (
	"errors"
	"net/http"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
	"github.com/Ilhamsafeek/panvel-final-sub001/pkg/logger"
	"github.com/Ilhamsafeek/panvel-final-sub001/service"
	"github.com/Ilhamsafeek/panvel-final-sub001/view"
	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	client  *service.Client
	hashLen int
}

func NewVerificationHandler(client *service.Client, hashDisplayLength int) *VerificationHandler {
	return &VerificationHandler{
		client:  client,
		hashLen: hashDisplayLength,
	}
}

// Page renders the verification page shell for one contract.
func (h *VerificationHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "page_verify.tmpl", gin.H{
		"ContractID": c.Query("contract_id"),
	})
}

// Indicator renders the verification indicator fragment. Without a contract id
// there is nothing to verify: the indicator renders idle and no upstream call
// is made. Any upstream failure terminates in the error state; the indicator
// never stays on the spinner.
func (h *VerificationHandler) Indicator(c *gin.Context) {
	contractID := c.Query("contract_id")
	if contractID == "" {
		c.HTML(http.StatusOK, "indicator.tmpl", view.Indicator{State: model.IndicatorIdle})
		return
	}

	result, err := h.client.VerifyContractHash(c.Request.Context(), contractID, c.Query("document_content"))
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("hash verification failed",
			"contract_id", contractID,
			"error", err,
		)
		c.HTML(http.StatusOK, "indicator.tmpl", view.Indicator{
			State:      model.IndicatorError,
			ContractID: contractID,
			Message:    verificationErrorMessage(err),
		})
		return
	}

	ind := view.NewIndicator(contractID, result, h.hashLen)
	if ind.State == model.IndicatorTampered {
		logger.WithContext(c.Request.Context()).Warn("document tampering detected",
			"contract_id", contractID,
			"detected_at", result.DetectedAt,
		)
	}
	c.HTML(http.StatusOK, "indicator.tmpl", ind)
}

// Certificate renders the read-only certificate detail. A contract with no
// blockchain record is a normal condition, reported as a dismissible notice.
func (h *VerificationHandler) Certificate(c *gin.Context) {
	contractID := c.Param("id")

	record, err := h.client.ContractRecord(c.Request.Context(), contractID)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.HTML(http.StatusOK, "notice.tmpl", view.Notice{
				Kind:        "info",
				Message:     "No blockchain record exists for this contract yet.",
				Dismissible: true,
			})
			return
		}
		logger.WithContext(c.Request.Context()).Warn("certificate fetch failed",
			"contract_id", contractID,
			"error", err,
		)
		c.HTML(http.StatusOK, "notice.tmpl", view.Notice{
			Kind:        "error",
			Message:     "Could not load the blockchain certificate. Please try again.",
			Dismissible: true,
		})
		return
	}

	c.HTML(http.StatusOK, "certificate.tmpl", view.Certificate{
		ContractID:      contractID,
		DocumentHash:    record.DocumentHash,
		TransactionHash: record.TransactionHash,
		BlockNumber:     record.BlockNumber,
		Network:         record.Network,
		Timestamp:       record.Timestamp,
		Mode:            record.Mode,
	})
}

func verificationErrorMessage(err error) string {
	var softErr *service.SoftError
	if errors.As(err, &softErr) {
		return "Verification unavailable: " + softErr.Message
	}
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			return "Sign in again to verify this document."
		}
		return "Verification service returned an error. Please retry."
	}
	return "Verification service is unreachable. Please retry."
}
