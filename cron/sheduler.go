package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"woosync.GO/cron/jobs"
)

// Job holds schedule and run function.
type Job struct {
	Schedule string
	Run      func(...string)
}

// Jobs maps job names to schedules. The map lives here rather than in
// config because jobs need config for their DB handle.
var Jobs = map[string]Job{
	"syncrefresh": {Schedule: "0 3 * * *", Run: jobs.RefreshJob},
	// Add more jobs here
}

func StartCron() *cron.Cron {
	c := cron.New()
	for name, j := range Jobs {
		run := j.Run
		_, err := c.AddFunc(j.Schedule, func() { run() })
		if err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	c.Start()
	return c
}
