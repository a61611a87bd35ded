package lib

import (
	"fmt"
	"net/url"
	"os"
)

// PayQRClient obtains a scannable payment-request image from the external
// bank QR service. Read-only, no state on either side; the transaction code
// inside the description is what ties an incoming transfer back to an order.
type PayQRClient interface {
	GenerateQR(amount float64, description string) (string, error)
}

var payQRClient PayQRClient

func GetPayQRClient() PayQRClient {
	if payQRClient != nil {
		return payQRClient
	}
	payQRClient = &imgLinkPayQRClient{
		baseURL:     os.Getenv("PAYQR_BASE_URL"),
		bankCode:    os.Getenv("PAYQR_BANK_CODE"),
		accountNo:   os.Getenv("PAYQR_ACCOUNT_NO"),
		accountName: os.Getenv("PAYQR_ACCOUNT_NAME"),
	}
	return payQRClient
}

// NewPayQRClient replaces the client instance, used by tests.
func NewPayQRClient(c PayQRClient) PayQRClient {
	payQRClient = c
	return payQRClient
}

// imgLinkPayQRClient builds quick-link image URLs for bank-transfer QR
// services of the img.vietqr.io family.
type imgLinkPayQRClient struct {
	baseURL     string
	bankCode    string
	accountNo   string
	accountName string
}

func (c *imgLinkPayQRClient) GenerateQR(amount float64, description string) (string, error) {
	if c.baseURL == "" || c.bankCode == "" || c.accountNo == "" {
		return "", fmt.Errorf("payment QR service is not configured")
	}
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%.0f", amount))
	q.Set("addInfo", description)
	if c.accountName != "" {
		q.Set("accountName", c.accountName)
	}
	u := fmt.Sprintf("%s/image/%s-%s-qr_only.png?%s", c.baseURL, c.bankCode, c.accountNo, q.Encode())
	return u, nil
}
