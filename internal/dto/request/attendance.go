package request

type ScanRequest struct {
	QRCode string `json:"qr_code" validate:"required"`
}
