package qr

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// DataURL renders target as a PNG QR code and returns it as a base64 data
// URL, ready to be printed on the card's inside-left panel.
func DataURL(target string) (string, error) {
	return DataURLSized(target, defaultSize)
}

func DataURLSized(target string, size int) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid target url %q", target)
	}
	if size <= 0 {
		size = defaultSize
	}

	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
