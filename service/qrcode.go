package service

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// UPIQRGenerator renders a upi:// deep link as a PNG data URL. The order id
// rides along as the transaction note so payments can be matched by hand.
type UPIQRGenerator struct {
	VPA          string
	MerchantName string
}

func (g UPIQRGenerator) PaymentQR(amount float64, orderID string) (string, error) {
	png, err := qrcode.Encode(g.link(amount, orderID), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func (g UPIQRGenerator) link(amount float64, orderID string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR&tn=%s",
		url.QueryEscape(g.VPA), url.QueryEscape(g.MerchantName), amount, url.QueryEscape(orderID))
}
