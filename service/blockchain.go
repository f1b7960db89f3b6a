package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Ilhamsafeek/panvel-final-sub001/model"
)

type verifyHashRequest struct {
	ContractID      string `json:"contract_id"`
	DocumentContent string `json:"document_content,omitempty"`
}

type verifyHashResponse struct {
	Success     bool   `json:"success"`
	Verified    bool   `json:"verified"`
	StoredHash  string `json:"stored_hash,omitempty"`
	CurrentHash string `json:"current_hash,omitempty"`
	DetectedAt  string `json:"detected_at,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// VerifyContractHash asks the upstream to compare the contract's current hash
// against its recorded one. documentContent is optional.
func (c *Client) VerifyContractHash(ctx context.Context, contractID, documentContent string) (*model.VerificationResult, error) {
	req := verifyHashRequest{ContractID: contractID, DocumentContent: documentContent}

	var resp verifyHashResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/blockchain/verify-contract-hash", req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = resp.Error
		}
		if msg == "" {
			msg = "verification was not performed"
		}
		return nil, &SoftError{Message: msg}
	}

	result := &model.VerificationResult{
		Verified:    resp.Verified,
		StoredHash:  resp.StoredHash,
		CurrentHash: resp.CurrentHash,
	}
	if resp.DetectedAt != "" {
		if at, err := time.Parse(time.RFC3339, resp.DetectedAt); err == nil {
			result.DetectedAt = at
		}
	}
	if !result.Verified && result.DetectedAt.IsZero() {
		result.DetectedAt = time.Now()
	}
	return result, nil
}

type contractRecordResponse struct {
	Success         bool                    `json:"success"`
	IntegrityRecord *model.CertificateRecord `json:"integrity_record"`
	BlockchainRecord struct {
		TransactionHash string `json:"transaction_hash"`
		BlockNumber     int64  `json:"block_number"`
		Network         string `json:"network"`
	} `json:"blockchain_record"`
	Mode string `json:"mode,omitempty"`
}

// ContractRecord fetches the blockchain record behind the certificate-detail
// view. A missing record is the recoverable ErrRecordNotFound, not a failure.
func (c *Client) ContractRecord(ctx context.Context, contractID string) (*model.CertificateRecord, error) {
	path := "/api/blockchain/contract-record/" + url.PathEscape(contractID)

	var resp contractRecordResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if !resp.Success || resp.IntegrityRecord == nil {
		return nil, ErrRecordNotFound
	}

	record := *resp.IntegrityRecord
	if record.TransactionHash == "" {
		record.TransactionHash = resp.BlockchainRecord.TransactionHash
	}
	if record.BlockNumber == 0 {
		record.BlockNumber = resp.BlockchainRecord.BlockNumber
	}
	if record.Network == "" {
		record.Network = resp.BlockchainRecord.Network
	}
	if record.Mode == "" {
		record.Mode = resp.Mode
	}
	return &record, nil
}
