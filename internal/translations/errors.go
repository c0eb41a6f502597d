package translations

import "errors"

var (
	ErrLocked               = errors.New("translations: project is locked by another write")
	ErrUnknownMode          = errors.New("translations: unknown import mode")
	ErrSyncNotConfigured    = errors.New("translations: sync target is not configured")
	ErrSyncUnavailable      = errors.New("translations: background sync is not available")
	ErrStorageNotConfigured = errors.New("translations: export storage is not configured")
	ErrNoLocales            = errors.New("translations: project has no locales")
)
