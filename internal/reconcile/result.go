package reconcile

// Teardown step names, in execution order.
const (
	StepScaleService     = "scale-service-to-zero"
	StepDeleteService    = "delete-service"
	StepDeleteCluster    = "delete-cluster"
	StepDeregisterTasks  = "deregister-task-definitions"
	StepDeleteRepository = "delete-repository"
	StepDeleteLogGroup   = "delete-log-group"
	StepDeleteRole       = "delete-execution-role"
	StepDeleteSecGroup   = "delete-security-group"
	StepDeleteUser       = "delete-ci-user"
)

// StepResult records the outcome of one teardown step. Teardown never stops
// on failure, so callers get the whole ordered list and can decide what a
// partial cleanup means for them.
type StepResult struct {
	Step string
	Err  error
}

// Failed reports whether the step errored.
func (r StepResult) Failed() bool {
	return r.Err != nil
}

// FailedSteps filters results down to the ones that errored.
func FailedSteps(results []StepResult) []StepResult {
	var failed []StepResult
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}
