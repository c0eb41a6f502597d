package autosync

import "errors"

var (
	ErrPoolRequired      = errors.New("autosync: pool is required")
	ErrAlreadyStarted    = errors.New("autosync: already started")
	ErrNotStarted        = errors.New("autosync: not started")
	ErrInvalidSchedule   = errors.New("autosync: invalid cron schedule")
	ErrHealthcheckFailed = errors.New("autosync: healthcheck failed")
)
