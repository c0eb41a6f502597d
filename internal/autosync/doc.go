// Package autosync pushes project translations to their GitHub sync targets
// in the background using River.
//
// Two job kinds run on the same Postgres pool as the entry store:
//
//   - localekit:sync pushes one project. It is enqueued on demand through
//     Manager.EnqueueSync and by the scan below.
//   - localekit:sync-scan runs on a cron schedule, finds targets with
//     auto-sync enabled whose last sync is older than their interval, and
//     enqueues a sync for each.
//
// Sync jobs are unique per project and arguments for one minute, so a manual
// request that races the scan does not push twice. A project whose target
// was removed cancels its job instead of retrying.
//
// River keeps its own tables. Apply them with Migrate before starting the
// manager.
package autosync
