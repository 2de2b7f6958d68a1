package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gantry-io/gantry/internal/cloud"
	"github.com/gantry-io/gantry/internal/stack"
)

// Reconciler drives one stack towards its desired shape. Strictly
// sequential: later steps consume identifiers produced by earlier ones, so
// no parallelism is safe without re-deriving the dependency graph.
type Reconciler struct {
	clients *cloud.Clients
	cfg     stack.Config
	log     *slog.Logger
}

func New(clients *cloud.Clients, cfg stack.Config, log *slog.Logger) *Reconciler {
	return &Reconciler{clients: clients, cfg: cfg, log: log}
}

// Provisioned carries every identifier the provision run resolved, plus the
// minted credential pair when key creation succeeded.
type Provisioned struct {
	AccountID         string
	RepositoryURI     string
	RoleARN           string
	Network           cloud.Network
	SecurityGroupID   string
	TaskDefinitionARN string

	Key             *cloud.AccessKey
	KeyQuotaReached bool
}

// Up runs the provision path: probe each resource in dependency order,
// create what is absent, reuse what is active. Fail-fast; there is no
// rollback of partially created resources, but reruns are safe because
// every create is guarded by an existence check.
func (r *Reconciler) Up(ctx context.Context) (*Provisioned, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	out := &Provisioned{}

	// Repository. Always re-read the URI afterwards: create may have raced
	// with an external actor, and the describe is the canonical answer.
	switch r.clients.ProbeRepository(ctx, r.cfg.RepositoryName) {
	case cloud.StatusAbsent:
		if err := r.clients.CreateRepository(ctx, r.cfg.RepositoryName); err != nil {
			return nil, err
		}
		r.log.Info("created repository", "name", r.cfg.RepositoryName)
	default:
		r.log.Info("reusing repository", "name", r.cfg.RepositoryName)
	}
	uri, err := r.clients.RepositoryURI(ctx, r.cfg.RepositoryName)
	if err != nil {
		return nil, err
	}
	out.RepositoryURI = uri

	// Execution role, then its managed policy as a separate idempotent step.
	switch r.clients.ProbeRole(ctx, r.cfg.ExecutionRoleName) {
	case cloud.StatusAbsent:
		arn, err := r.clients.CreateRole(ctx, r.cfg.ExecutionRoleName, stack.TrustPolicy)
		if err != nil {
			return nil, err
		}
		out.RoleARN = arn
		r.log.Info("created execution role", "name", r.cfg.ExecutionRoleName)
	default:
		arn, err := r.clients.RoleARN(ctx, r.cfg.ExecutionRoleName)
		if err != nil {
			return nil, err
		}
		out.RoleARN = arn
		r.log.Info("reusing execution role", "name", r.cfg.ExecutionRoleName)
	}
	if err := r.clients.EnsureRolePolicy(ctx, r.cfg.ExecutionRoleName, stack.ExecutionPolicyARN); err != nil {
		return nil, err
	}

	// Cluster. INACTIVE cannot be reactivated in place: delete, recreate.
	switch r.clients.ProbeCluster(ctx, r.cfg.ClusterName) {
	case cloud.StatusActive:
		r.log.Info("reusing cluster", "name", r.cfg.ClusterName)
	case cloud.StatusInactive:
		r.log.Warn("cluster is inactive, recreating", "name", r.cfg.ClusterName)
		if err := r.clients.DeleteCluster(ctx, r.cfg.ClusterName); err != nil {
			return nil, err
		}
		if err := r.clients.CreateCluster(ctx, r.cfg.ClusterName); err != nil {
			return nil, err
		}
		r.log.Info("created cluster", "name", r.cfg.ClusterName)
	case cloud.StatusAbsent, cloud.StatusOther:
		if err := r.clients.CreateCluster(ctx, r.cfg.ClusterName); err != nil {
			return nil, err
		}
		r.log.Info("created cluster", "name", r.cfg.ClusterName)
	}

	// Network discovery is read-only; no default VPC fails the run.
	net, err := r.clients.DiscoverNetwork(ctx)
	if err != nil {
		return nil, err
	}
	out.Network = *net
	r.log.Info("discovered network", "vpc", net.VpcID, "subnets", len(net.SubnetIDs))

	// Security group: existing rules are trusted as-is.
	groupID, err := r.clients.FindSecurityGroup(ctx, net.VpcID, r.cfg.SecurityGroupName)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		groupID, err = r.clients.CreateSecurityGroup(ctx, net.VpcID, r.cfg.SecurityGroupName, r.cfg.ContainerPort)
		if err != nil {
			return nil, err
		}
		r.log.Info("created security group", "name", r.cfg.SecurityGroupName, "id", groupID, "port", r.cfg.ContainerPort)
	} else {
		r.log.Info("reusing security group", "name", r.cfg.SecurityGroupName, "id", groupID)
	}
	out.SecurityGroupID = groupID

	// Log group must exist before the first task launch.
	if r.clients.ProbeLogGroup(ctx, r.cfg.LogGroupName) == cloud.StatusAbsent {
		if err := r.clients.CreateLogGroup(ctx, r.cfg.LogGroupName, r.cfg.LogRetentionDays); err != nil {
			return nil, err
		}
		r.log.Info("created log group", "name", r.cfg.LogGroupName)
	} else {
		r.log.Info("reusing log group", "name", r.cfg.LogGroupName)
	}

	// Task definition: registration is additive, every run yields a fresh
	// immutable revision under the stable family name.
	taskARN, err := r.clients.RegisterTask(ctx, cloud.TaskSpec{
		Family:        r.cfg.TaskFamily,
		CPU:           r.cfg.TaskCPU,
		Memory:        r.cfg.TaskMemory,
		ContainerName: r.cfg.ContainerName,
		Image:         r.cfg.ContainerImage,
		Port:          r.cfg.ContainerPort,
		ExecutionRole: out.RoleARN,
		LogGroup:      r.cfg.LogGroupName,
		Region:        r.cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	out.TaskDefinitionARN = taskARN
	r.log.Info("registered task definition", "arn", taskARN)

	// Service: reuse-as-is when active, no drift correction of desired
	// count or task definition.
	switch r.clients.ProbeService(ctx, r.cfg.ClusterName, r.cfg.ServiceName) {
	case cloud.StatusActive:
		r.log.Info("reusing service", "name", r.cfg.ServiceName)
	default:
		err := r.clients.CreateService(ctx, cloud.ServiceSpec{
			Cluster:        r.cfg.ClusterName,
			Name:           r.cfg.ServiceName,
			TaskFamily:     r.cfg.TaskFamily,
			DesiredCount:   r.cfg.DesiredCount,
			Subnets:        net.SubnetIDs,
			SecurityGroups: []string{groupID},
		})
		if err != nil {
			return nil, err
		}
		r.log.Info("created service", "name", r.cfg.ServiceName)
	}

	// CI user with its fixed policy set.
	if r.clients.ProbeUser(ctx, r.cfg.CIUserName) == cloud.StatusAbsent {
		if err := r.clients.CreateUser(ctx, r.cfg.CIUserName); err != nil {
			return nil, err
		}
		for _, arn := range stack.CIUserPolicyARNs() {
			if err := r.clients.AttachUserPolicy(ctx, r.cfg.CIUserName, arn); err != nil {
				return nil, err
			}
		}
		r.log.Info("created ci user", "name", r.cfg.CIUserName)
	} else {
		r.log.Info("reusing ci user", "name", r.cfg.CIUserName)
	}

	// Credential emitter. Quota exhaustion is surfaced, not fatal.
	key, err := r.clients.CreateAccessKey(ctx, r.cfg.CIUserName)
	switch {
	case errors.Is(err, cloud.ErrKeyQuotaReached):
		out.KeyQuotaReached = true
		r.log.Warn("access key limit reached, reuse or rotate existing keys", "user", r.cfg.CIUserName)
	case err != nil:
		return nil, err
	default:
		out.Key = key
		r.log.Info("created access key", "user", r.cfg.CIUserName, "id", key.ID)
	}

	// Account id only decorates the operator report; losing it is not worth
	// failing an otherwise complete run.
	if id, err := r.clients.AccountID(ctx); err == nil {
		out.AccountID = id
	} else {
		r.log.Warn("could not resolve account id", "error", err)
	}

	return out, nil
}

// ResourceState pairs a resource label with its probed status.
type ResourceState struct {
	Resource string
	Status   cloud.ResourceStatus
}

// Status probes every resource in the stack without mutating anything.
func (r *Reconciler) Status(ctx context.Context) ([]ResourceState, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	states := []ResourceState{
		{Resource: fmt.Sprintf("repository %s", r.cfg.RepositoryName), Status: r.clients.ProbeRepository(ctx, r.cfg.RepositoryName)},
		{Resource: fmt.Sprintf("execution role %s", r.cfg.ExecutionRoleName), Status: r.clients.ProbeRole(ctx, r.cfg.ExecutionRoleName)},
		{Resource: fmt.Sprintf("cluster %s", r.cfg.ClusterName), Status: r.clients.ProbeCluster(ctx, r.cfg.ClusterName)},
		{Resource: fmt.Sprintf("log group %s", r.cfg.LogGroupName), Status: r.clients.ProbeLogGroup(ctx, r.cfg.LogGroupName)},
		{Resource: fmt.Sprintf("service %s", r.cfg.ServiceName), Status: r.clients.ProbeService(ctx, r.cfg.ClusterName, r.cfg.ServiceName)},
		{Resource: fmt.Sprintf("ci user %s", r.cfg.CIUserName), Status: r.clients.ProbeUser(ctx, r.cfg.CIUserName)},
	}

	sgStatus := cloud.StatusAbsent
	if net, err := r.clients.DiscoverNetwork(ctx); err == nil {
		if id, err := r.clients.FindSecurityGroup(ctx, net.VpcID, r.cfg.SecurityGroupName); err == nil && id != "" {
			sgStatus = cloud.StatusActive
		}
	}
	states = append(states, ResourceState{
		Resource: fmt.Sprintf("security group %s", r.cfg.SecurityGroupName),
		Status:   sgStatus,
	})
	return states, nil
}
