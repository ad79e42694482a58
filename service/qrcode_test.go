package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUPIQRGeneratorLink(t *testing.T) {
	gen := UPIQRGenerator{VPA: "shop@okaxis", MerchantName: "Chai Point"}

	link := gen.link(85, "ORD-abc123")
	assert.Equal(t, "upi://pay?pa=shop%40okaxis&pn=Chai+Point&am=85.00&cu=INR&tn=ORD-abc123", link)
}

func TestUPIQRGeneratorPaymentQR(t *testing.T) {
	gen := UPIQRGenerator{VPA: "shop@okaxis", MerchantName: "Chai Point"}

	img, err := gen.PaymentQR(199.5, "ORD-xyz")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(img, "data:image/png;base64,"))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(img, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
