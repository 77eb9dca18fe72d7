package cron

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"weexpense/internal/notify"
	"weexpense/pkg/utils"
)

func StartCronJob(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at midnight, sending each user a summary of yesterday's spend.
	_, err := c.AddFunc("0 0 * * *", func() {
		if err := SendDailyDigests(db); err != nil {
			utils.Logger.Errorf("Cron job failed to send daily digests: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule daily digest job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (daily expense digest at midnight)")
	return c
}

// SendDailyDigests emails every user who recorded expenses in the last 24
// hours. Sends run concurrently; individual failures are logged and do not
// stop the batch.
func SendDailyDigests(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT u.email, u.username, COUNT(e.id), COALESCE(SUM(e.amount), 0)
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE e.created_at >= ?
		GROUP BY u.id, u.email, u.username
	`, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		return err
	}
	defer rows.Close()

	var wg sync.WaitGroup
	for rows.Next() {
		var (
			email, username string
			count           int
			total           decimal.Decimal
		)
		if err := rows.Scan(&email, &username, &count, &total); err != nil {
			utils.Logger.Errorf("error scanning digest row: %v", err)
			continue
		}

		wg.Add(1)
		go func(email, username string, count int, total decimal.Decimal) {
			defer wg.Done()
			if err := notify.SendDigestEmail(email, username, count, total.StringFixed(2)); err != nil {
				utils.Logger.Errorf("failed to send digest email to %s: %v", email, err)
			}
		}(email, username, count, total)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	wg.Wait()
	return nil
}
