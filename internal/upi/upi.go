// Package upi builds UPI payment request URIs and renders them as terminal QR codes.
package upi

import (
	"net/url"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// URI builds a UPI payment request for amount rupees to payee.
func URI(payee, payeeName string, amount int64) string {
	// UPI apps expect the address unescaped, so the query is assembled by hand.
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(payee)
	b.WriteString("&pn=")
	b.WriteString(url.QueryEscape(payeeName))
	b.WriteString("&am=")
	b.WriteString(strconv.FormatInt(amount, 10))
	b.WriteString("&cu=INR")
	return b.String()
}

// Renderer turns content into a scannable code for display.
type Renderer interface {
	Render(content string) (string, error)
}

// Terminal renders QR codes with half-block characters.
type Terminal struct {
	// Inverse swaps dark and light modules, for light-on-dark terminals.
	Inverse bool
}

// Render implements Renderer.
func (t Terminal) Render(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(t.Inverse), nil
}

// Nop renders nothing. It stands in when no QR capability is available.
type Nop struct{}

// Render implements Renderer.
func (Nop) Render(string) (string, error) {
	return "", nil
}
