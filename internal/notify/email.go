package notify

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

func sendReceiptEmail(to string, summary Summary, receipt []byte) error {
	subject := fmt.Sprintf("Receipt for %s", summary.Title)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Expense Receipt</title>
	<style>
		body {
			font-family: 'Segoe UI', Roboto, Arial, sans-serif;
			background-color: #f6f8f7;
			margin: 0;
			padding: 0;
			color: #333;
		}
		.container {
			max-width: 480px;
			margin: 25px auto;
			background: #ffffff;
			border-radius: 12px;
			box-shadow: 0 4px 16px rgba(0, 0, 0, 0.08);
			overflow: hidden;
			border-top: 5px solid #0a4d3c;
		}
		.header {
			background-color: #0a4d3c;
			color: #ffffff;
			text-align: center;
			padding: 18px 12px;
		}
		.content {
			padding: 24px 28px;
		}
		.row {
			display: flex;
			justify-content: space-between;
			padding: 8px 0;
			border-bottom: 1px solid #eee;
			font-size: 15px;
		}
		.amount {
			font-size: 26px;
			font-weight: bold;
			color: #0a4d3c;
			text-align: center;
			margin: 18px 0;
		}
		.footer {
			background: #f0f6f2;
			text-align: center;
			padding: 14px;
			font-size: 12px;
			color: #777;
		}
	</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h2>New Expense Receipt</h2></div>
			<div class="content">
				<p>You have a new expense recorded with We Expense.</p>
				<div class="amount">$%s</div>
				<div class="row"><span>Title</span><span>%s</span></div>
				<div class="row"><span>Category</span><span>%s</span></div>
				<div class="row"><span>Date</span><span>%s</span></div>
				<div class="row"><span>Reference</span><span>%s</span></div>
			</div>
			<div class="footer">
				&copy; %d We Expense | https://weexpense.com
			</div>
		</div>
	</body>
	</html>
	`, summary.Amount, summary.Title, summary.Category, summary.Date, summary.ID, time.Now().Year())

	var attachment []byte
	if len(receipt) > 0 {
		attachment = receipt
	}

	return sendEmail(to, subject, body, attachment)
}

// SendDigestEmail delivers the daily spend summary produced by the cron job.
func SendDigestEmail(to, username string, count int, total string) error {
	subject := "Your daily expense summary"

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<body style="font-family: 'Segoe UI', Roboto, Arial, sans-serif; color: #333;">
		<div style="max-width: 480px; margin: 25px auto; border-top: 5px solid #0a4d3c; padding: 20px;">
			<h2 style="color: #0a4d3c;">Hello %s,</h2>
			<p>You recorded <b>%d</b> expense(s) in the last 24 hours for a total of <b>$%s</b>.</p>
			<p style="font-size: 12px; color: #777;">&copy; %d We Expense | https://weexpense.com</p>
		</div>
	</body>
	</html>
	`, username, count, total, time.Now().Year())

	return sendEmail(to, subject, body, nil)
}

func sendEmail(to, subject, body string, attachment []byte) error {
	from := os.Getenv("SMTP_EMAIL")
	password := os.Getenv("SMTP_PASS")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	smtpPort, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if len(attachment) > 0 {
		msg.Attach("receipt.jpg", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	d := gomail.NewDialer(host, smtpPort, from, password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
