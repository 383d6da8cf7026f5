package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/logger"
)

// checkjobs prints recent scheduled job runs and the checkout session backlog
func main() {
	limit := flag.Int("limit", 20, "number of job runs to show")
	job := flag.String("job", "", "only show runs of this job")
	flag.Parse()

	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg("no .env file found, using environment variables")
	}
	cfg, err := config.Get()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Configure(logger.Config{Level: "warn", Pretty: true})

	store, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()
	db := store.GetDB()

	query := db.Order("started_at DESC").Limit(*limit)
	if *job != "" {
		query = query.Where("job_name = ?", *job)
	}

	var runs []model.CronJobLog
	if err := query.Find(&runs).Error; err != nil {
		logger.Fatal().Err(err).Msg("failed to load cron job logs")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tSTATUS\tSTARTED\tDURATION\tAFFECTED\tERROR")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.JobName, r.Status, r.StartedAt.Format(time.RFC3339),
			time.Duration(r.Duration)*time.Millisecond, r.Affected, r.ErrorMsg)
	}
	w.Flush()

	var backlog []struct {
		Status string
		Count  int64
	}
	err = db.Model(&model.CheckoutSession{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&backlog).Error
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to count checkout sessions")
	}

	fmt.Println()
	for _, b := range backlog {
		fmt.Printf("checkout sessions %-8s %d\n", b.Status, b.Count)
	}
}
