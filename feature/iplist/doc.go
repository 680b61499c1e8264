// Package iplist runs IP list reconciliations end to end.
//
// It turns the policy engine exports into reconcile inputs, runs the
// reconcile engine, and produces the run artifacts:
//
//   - report.txt: the human readable report (created, updated, regrouped,
//     reassigned, kept, deletion candidates, duplicate addresses)
//   - plan.json: the machine readable plan
//   - new.iplist.new.fqdns.csv / update.iplist.existing.fqdns.csv: the import
//     files for the policy engine, written only when a run is applied
//
// Inputs are local paths or objects of the configured bucket ("bucket:<key>").
// Runs can be recorded in the history database and published to the bucket
// under runs/<run id>/.
//
// # HTTP Endpoints
//
//   - POST /iplists/plan : Computes a plan from uploaded exports (never applies).
//   - GET /iplists/runs : Lists recorded runs.
//   - GET /iplists/runs/:id : Returns one recorded run with its events.
package iplist
