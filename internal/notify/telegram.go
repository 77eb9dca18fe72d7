package notify

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
)

func telegramMessage(summary Summary) string {
	return fmt.Sprintf(
		"You have a new expense from We Expense App.\n\n"+
			"Expense Title: %s\n"+
			"Total Amount Due: $%s\n"+
			"Date: %s\n\n"+
			"Thank you,\n"+
			"Powered by: https://weexpense.com",
		summary.Title, summary.Amount, summary.Date,
	)
}

// sendTelegram posts straight to the Bot API: sendPhoto with a multipart
// upload when a receipt image is attached, sendMessage otherwise.
func (d *Dispatcher) sendTelegram(chatID string, summary Summary, image []byte) error {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN not set")
	}

	caption := telegramMessage(summary)

	if len(image) == 0 {
		endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
		resp, err := d.client.PostForm(endpoint, url.Values{
			"chat_id": {chatID},
			"text":    {caption},
		})
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
		defer resp.Body.Close()
		return checkTelegramResponse(resp)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("chat_id", chatID); err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}

	part, err := writer.CreateFormFile("photo", "receipt.jpg")
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendPhoto", token)
	resp, err := d.client.Post(endpoint, writer.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("failed to send telegram photo: %w", err)
	}
	defer resp.Body.Close()

	return checkTelegramResponse(resp)
}

func checkTelegramResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("telegram API error (%d): %s", resp.StatusCode, string(body))
}
