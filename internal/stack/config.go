package stack

import (
	"fmt"
	"strings"
)

// Managed policy ARNs referenced by the stack. The execution policy is
// attached to the task execution role; the CI policies are attached to the
// deploy user so a pipeline can push images and roll the service.
const (
	ExecutionPolicyARN = "arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"
	CIECRPolicyARN     = "arn:aws:iam::aws:policy/AmazonEC2ContainerRegistryPowerUser"
	CIECSPolicyARN     = "arn:aws:iam::aws:policy/AmazonECS_FullAccess"
	CIIAMReadPolicyARN = "arn:aws:iam::aws:policy/IAMReadOnlyAccess"
)

// TrustPolicy is the assume-role document for the task execution role,
// scoped to the ECS tasks service principal.
const TrustPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "ecs-tasks.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`

// Config describes one deploy-target stack: a fixed topology of named AWS
// resources. It is immutable once constructed; the reconciler never writes
// back into it.
type Config struct {
	Region string

	RepositoryName    string
	ClusterName       string
	ServiceName       string
	TaskFamily        string
	SecurityGroupName string
	ExecutionRoleName string
	CIUserName        string
	LogGroupName      string

	ContainerName  string
	ContainerImage string
	ContainerPort  int32

	TaskCPU      string
	TaskMemory   string
	DesiredCount int32

	LogRetentionDays int32
}

// Default returns the standard single-service stack.
func Default() Config {
	return Config{
		Region:            "us-east-1",
		RepositoryName:    "gantry-app",
		ClusterName:       "gantry-cluster",
		ServiceName:       "gantry-service",
		TaskFamily:        "gantry-task",
		SecurityGroupName: "gantry-sg",
		ExecutionRoleName: "gantryTaskExecutionRole",
		CIUserName:        "gantry-ci",
		LogGroupName:      "/ecs/gantry-task",
		ContainerName:     "app",
		ContainerImage:    "public.ecr.aws/docker/library/busybox:latest",
		ContainerPort:     3001,
		TaskCPU:           "256",
		TaskMemory:        "512",
		DesiredCount:      1,
		LogRetentionDays:  30,
	}
}

// WithPrefix derives a renamed stack so several environments can coexist in
// one account. The region and container spec are unchanged.
func (c Config) WithPrefix(prefix string) Config {
	if prefix == "" {
		return c
	}
	c.RepositoryName = prefix + "-app"
	c.ClusterName = prefix + "-cluster"
	c.ServiceName = prefix + "-service"
	c.TaskFamily = prefix + "-task"
	c.SecurityGroupName = prefix + "-sg"
	c.ExecutionRoleName = prefix + "TaskExecutionRole"
	c.CIUserName = prefix + "-ci"
	c.LogGroupName = "/ecs/" + prefix + "-task"
	return c
}

// WithRegion returns a copy targeting another region.
func (c Config) WithRegion(region string) Config {
	if region == "" {
		return c
	}
	c.Region = region
	return c
}

// Validate checks the invariants the reconciler depends on.
func (c Config) Validate() error {
	names := map[string]string{
		"region":              c.Region,
		"repository name":     c.RepositoryName,
		"cluster name":        c.ClusterName,
		"service name":        c.ServiceName,
		"task family":         c.TaskFamily,
		"security group name": c.SecurityGroupName,
		"execution role name": c.ExecutionRoleName,
		"ci user name":        c.CIUserName,
		"container name":      c.ContainerName,
		"container image":     c.ContainerImage,
	}
	for field, v := range names {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("stack config: %s must not be empty", field)
		}
	}
	if !strings.HasPrefix(c.LogGroupName, "/") {
		return fmt.Errorf("stack config: log group name %q must be path-like", c.LogGroupName)
	}
	if c.ContainerPort < 1 || c.ContainerPort > 65535 {
		return fmt.Errorf("stack config: container port %d out of range", c.ContainerPort)
	}
	if c.DesiredCount < 0 {
		return fmt.Errorf("stack config: desired count %d must not be negative", c.DesiredCount)
	}
	return nil
}

// CIUserPolicyARNs lists the managed policies attached to the CI user.
func CIUserPolicyARNs() []string {
	return []string{CIECRPolicyARN, CIECSPolicyARN, CIIAMReadPolicyARN}
}
