package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextFire returns the next time after from at which a daily "HH:MM"
// schedule fires.
func NextFire(hhmm string, from time.Time) (time.Time, error) {
	hh, mm, ok := strings.Cut(hhmm, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("scheduler: time of day %q is not HH:MM", hhmm)
	}

	sched, err := cronParser.Parse(fmt.Sprintf("%s %s * * *", mm, hh))
	if err != nil {
		return time.Time{}, fmt.Errorf("scheduler: parse time of day %q: %w", hhmm, err)
	}
	return sched.Next(from), nil
}
