package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zones for minimal container images

	"github.com/go-playground/validator/v10"
)

// Validate checks struct tags and the fields tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, _, err := c.Scheduler.TimeOfDay(); err != nil {
		return err
	}
	if _, err := c.Scheduler.Location(); err != nil {
		return err
	}
	return nil
}

// TimeOfDay parses DailyTime as HH:MM.
func (s SchedulerConfig) TimeOfDay() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.DailyTime)
	if err != nil {
		return 0, 0, fmt.Errorf("scheduler.daily_time %q must be HH:MM: %w", s.DailyTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Location loads Timezone from the tz database.
func (s SchedulerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler.timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// IsOwner reports whether userID is the configured owner. No owner means no
// one passes.
func (d DiscordConfig) IsOwner(userID string) bool {
	return d.OwnerID != "" && d.OwnerID == userID
}
