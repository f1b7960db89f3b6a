package model

import "time"

// IndicatorState is the verification indicator's state machine. All three
// outcome states are terminal; only a fresh page load or explicit
// re-invocation re-enters loading.
type IndicatorState string

const (
	IndicatorIdle     IndicatorState = "idle"
	IndicatorLoading  IndicatorState = "loading"
	IndicatorVerified IndicatorState = "verified"
	IndicatorTampered IndicatorState = "tampered"
	IndicatorError    IndicatorState = "error"
)

// VerificationResult mirrors one verify-hash response. Ephemeral: it exists
// only for the duration of rendering one indicator.
type VerificationResult struct {
	Verified    bool      `json:"verified"`
	StoredHash  string    `json:"stored_hash,omitempty"`
	CurrentHash string    `json:"current_hash,omitempty"`
	DetectedAt  time.Time `json:"detected_at,omitempty"`
}

// CertificateRecord is the read-only blockchain record shown in the
// certificate-detail view.
type CertificateRecord struct {
	DocumentHash    string    `json:"document_hash"`
	TransactionHash string    `json:"transaction_hash"`
	BlockNumber     int64     `json:"block_number"`
	Network         string    `json:"network"`
	Timestamp       time.Time `json:"timestamp"`
	Mode            string    `json:"mode,omitempty"`
}
