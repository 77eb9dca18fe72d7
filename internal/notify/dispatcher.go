// Package notify delivers expense receipts over email or Telegram. Delivery
// always happens after the expense is durably committed and never inside the
// store transaction; callers fire it from a goroutine and only log failures.
package notify

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
)

// Summary is the deliverable slice of a committed expense.
type Summary struct {
	ID       string
	Title    string
	Amount   string
	Date     string
	Category string
}

type Dispatcher struct {
	client *http.Client
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Deliver sends the summary (and optional receipt image) over the requested
// channel. The image may arrive raw or base64-encoded; it is normalized first.
func (d *Dispatcher) Deliver(channel Channel, target string, summary Summary, image []byte) error {
	if len(image) > 0 {
		image = normalizeImage(image)
	}

	switch channel {
	case ChannelEmail:
		return sendReceiptEmail(target, summary, image)
	case ChannelTelegram:
		return d.sendTelegram(target, summary, image)
	default:
		return fmt.Errorf("unknown notification channel %q", channel)
	}
}

var (
	jpegJFIFHeader = []byte{0xff, 0xd8, 0xff, 0xe0}
	jpegExifHeader = []byte{0xff, 0xd8, 0xff, 0xe1}
	pngHeader      = []byte{0x89, 0x50, 0x4e, 0x47}
)

// normalizeImage tolerates clients that ship the receipt base64-encoded
// instead of raw. Data that already carries a JPEG or PNG header passes
// through; otherwise a base64 decode is attempted and used when it succeeds.
func normalizeImage(data []byte) []byte {
	if len(data) >= 4 {
		header := data[:4]
		if bytes.Equal(header, jpegJFIFHeader) || bytes.Equal(header, jpegExifHeader) || bytes.Equal(header, pngHeader) {
			return data
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return data
	}
	return decoded
}
