package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/gantry-io/gantry/internal/stack"
)

// Down tears the stack down in reverse dependency order. Every step is
// independently fault-tolerant: failures (including "does not exist") are
// recorded and the walk continues, because partial cleanup is strictly
// better than none. The ordered results let callers tell exactly which
// steps went through.
func (r *Reconciler) Down(ctx context.Context) []StepResult {
	var results []StepResult
	record := func(step string, err error) {
		if err != nil {
			r.log.Warn("teardown step failed, continuing", "step", step, "error", err)
		} else {
			r.log.Info("teardown step done", "step", step)
		}
		results = append(results, StepResult{Step: step, Err: err})
	}

	record(StepScaleService, r.clients.ScaleServiceToZero(ctx, r.cfg.ClusterName, r.cfg.ServiceName))
	record(StepDeleteService, r.clients.DeleteService(ctx, r.cfg.ClusterName, r.cfg.ServiceName))
	record(StepDeleteCluster, r.clients.DeleteCluster(ctx, r.cfg.ClusterName))
	record(StepDeregisterTasks, r.deregisterAllTasks(ctx))
	record(StepDeleteRepository, r.clients.DeleteRepository(ctx, r.cfg.RepositoryName))
	record(StepDeleteLogGroup, r.clients.DeleteLogGroup(ctx, r.cfg.LogGroupName))
	record(StepDeleteRole, r.deleteRole(ctx))
	record(StepDeleteSecGroup, r.deleteSecurityGroup(ctx))
	record(StepDeleteUser, r.deleteUser(ctx))

	return results
}

// deregisterAllTasks retires every revision under the family, not just the
// latest. Individual failures are aggregated, not short-circuited.
func (r *Reconciler) deregisterAllTasks(ctx context.Context) error {
	arns, err := r.clients.ListTaskRevisions(ctx, r.cfg.TaskFamily)
	if err != nil {
		return err
	}
	var errs []error
	for _, arn := range arns {
		if err := r.clients.DeregisterTask(ctx, arn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Reconciler) deleteRole(ctx context.Context) error {
	// The managed policy must be detached first or DeleteRole refuses.
	var errs []error
	if err := r.clients.DetachRolePolicy(ctx, r.cfg.ExecutionRoleName, stack.ExecutionPolicyARN); err != nil {
		errs = append(errs, err)
	}
	if err := r.clients.DeleteRole(ctx, r.cfg.ExecutionRoleName); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// deleteSecurityGroup resolves the group by name first; an absent group is
// a clean skip, not a failure.
func (r *Reconciler) deleteSecurityGroup(ctx context.Context) error {
	net, err := r.clients.DiscoverNetwork(ctx)
	if err != nil {
		return fmt.Errorf("cannot locate security group without a default VPC: %w", err)
	}
	groupID, err := r.clients.FindSecurityGroup(ctx, net.VpcID, r.cfg.SecurityGroupName)
	if err != nil {
		return err
	}
	if groupID == "" {
		r.log.Info("security group already absent", "name", r.cfg.SecurityGroupName)
		return nil
	}
	return r.clients.DeleteSecurityGroup(ctx, groupID)
}

// deleteUser removes every access key and detaches every managed policy
// before deleting the principal; IAM refuses to delete a user with either
// still in place.
func (r *Reconciler) deleteUser(ctx context.Context) error {
	var errs []error

	keys, err := r.clients.ListAccessKeyIDs(ctx, r.cfg.CIUserName)
	if err != nil {
		errs = append(errs, err)
	}
	for _, id := range keys {
		if err := r.clients.DeleteAccessKey(ctx, r.cfg.CIUserName, id); err != nil {
			errs = append(errs, err)
		}
	}

	policies, err := r.clients.ListUserPolicies(ctx, r.cfg.CIUserName)
	if err != nil {
		errs = append(errs, err)
	}
	for _, arn := range policies {
		if err := r.clients.DetachUserPolicy(ctx, r.cfg.CIUserName, arn); err != nil {
			errs = append(errs, err)
		}
	}

	if err := r.clients.DeleteUser(ctx, r.cfg.CIUserName); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
