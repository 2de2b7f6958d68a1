package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// TaskSpec carries everything RegisterTask needs beyond the stack names.
type TaskSpec struct {
	Family        string
	CPU           string
	Memory        string
	ContainerName string
	Image         string
	Port          int32
	ExecutionRole string
	LogGroup      string
	Region        string
}

// ServiceSpec binds a service to its cluster, task family and network.
type ServiceSpec struct {
	Cluster        string
	Name           string
	TaskFamily     string
	DesiredCount   int32
	Subnets        []string
	SecurityGroups []string
}

// ProbeCluster maps the cluster's control-plane status onto the resource
// state machine. An INACTIVE cluster cannot be reactivated in place, so the
// caller must delete and recreate it.
func (c *Clients) ProbeCluster(ctx context.Context, name string) ResourceStatus {
	out, err := c.ECS.DescribeClusters(ctx, &ecs.DescribeClustersInput{
		Clusters: []string{name},
	})
	if err != nil || len(out.Clusters) == 0 {
		return StatusAbsent
	}
	switch aws.ToString(out.Clusters[0].Status) {
	case "ACTIVE":
		return StatusActive
	case "INACTIVE":
		return StatusInactive
	default:
		return StatusOther
	}
}

func (c *Clients) CreateCluster(ctx context.Context, name string) error {
	_, err := c.ECS.CreateCluster(ctx, &ecs.CreateClusterInput{
		ClusterName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to create cluster %s: %w", name, err)
	}
	return nil
}

func (c *Clients) DeleteCluster(ctx context.Context, name string) error {
	_, err := c.ECS.DeleteCluster(ctx, &ecs.DeleteClusterInput{
		Cluster: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete cluster %s: %w", name, err)
	}
	return nil
}

// RegisterTask registers a new revision under the family. Registration is
// always additive; revisions are immutable and accumulate.
func (c *Clients) RegisterTask(ctx context.Context, spec TaskSpec) (string, error) {
	out, err := c.ECS.RegisterTaskDefinition(ctx, &ecs.RegisterTaskDefinitionInput{
		Family:                  aws.String(spec.Family),
		NetworkMode:             types.NetworkModeAwsvpc,
		RequiresCompatibilities: []types.Compatibility{types.CompatibilityFargate},
		Cpu:                     aws.String(spec.CPU),
		Memory:                  aws.String(spec.Memory),
		ExecutionRoleArn:        aws.String(spec.ExecutionRole),
		ContainerDefinitions: []types.ContainerDefinition{
			{
				Name:      aws.String(spec.ContainerName),
				Image:     aws.String(spec.Image),
				Essential: aws.Bool(true),
				PortMappings: []types.PortMapping{
					{
						ContainerPort: aws.Int32(spec.Port),
						HostPort:      aws.Int32(spec.Port),
						Protocol:      types.TransportProtocolTcp,
					},
				},
				LogConfiguration: &types.LogConfiguration{
					LogDriver: types.LogDriverAwslogs,
					Options: map[string]string{
						"awslogs-group":         spec.LogGroup,
						"awslogs-region":        spec.Region,
						"awslogs-stream-prefix": "ecs",
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to register task definition %s: %w", spec.Family, err)
	}
	return aws.ToString(out.TaskDefinition.TaskDefinitionArn), nil
}

// ListTaskRevisions returns the ARNs of every revision under the family.
func (c *Clients) ListTaskRevisions(ctx context.Context, family string) ([]string, error) {
	var arns []string
	var next *string
	for {
		out, err := c.ECS.ListTaskDefinitions(ctx, &ecs.ListTaskDefinitionsInput{
			FamilyPrefix: aws.String(family),
			NextToken:    next,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list task definitions for %s: %w", family, err)
		}
		arns = append(arns, out.TaskDefinitionArns...)
		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}
	return arns, nil
}

func (c *Clients) DeregisterTask(ctx context.Context, arn string) error {
	_, err := c.ECS.DeregisterTaskDefinition(ctx, &ecs.DeregisterTaskDefinitionInput{
		TaskDefinition: aws.String(arn),
	})
	if err != nil {
		return fmt.Errorf("failed to deregister task definition %s: %w", arn, err)
	}
	return nil
}

// ProbeService reports the service state within the cluster. DRAINING and
// INACTIVE both mean the name is taken but unusable.
func (c *Clients) ProbeService(ctx context.Context, cluster, name string) ResourceStatus {
	out, err := c.ECS.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(cluster),
		Services: []string{name},
	})
	if err != nil || len(out.Services) == 0 {
		return StatusAbsent
	}
	switch aws.ToString(out.Services[0].Status) {
	case "ACTIVE":
		return StatusActive
	case "DRAINING", "INACTIVE":
		return StatusInactive
	default:
		return StatusOther
	}
}

// CreateService launches a Fargate service bound to the task family name,
// which always resolves to the latest registered revision. Tasks get public
// IPs so image pulls work without a NAT gateway.
func (c *Clients) CreateService(ctx context.Context, spec ServiceSpec) error {
	_, err := c.ECS.CreateService(ctx, &ecs.CreateServiceInput{
		Cluster:        aws.String(spec.Cluster),
		ServiceName:    aws.String(spec.Name),
		TaskDefinition: aws.String(spec.TaskFamily),
		DesiredCount:   aws.Int32(spec.DesiredCount),
		LaunchType:     types.LaunchTypeFargate,
		NetworkConfiguration: &types.NetworkConfiguration{
			AwsvpcConfiguration: &types.AwsVpcConfiguration{
				Subnets:        spec.Subnets,
				SecurityGroups: spec.SecurityGroups,
				AssignPublicIp: types.AssignPublicIpEnabled,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create service %s: %w", spec.Name, err)
	}
	return nil
}

// ScaleServiceToZero drains the service so deletion does not strand tasks.
func (c *Clients) ScaleServiceToZero(ctx context.Context, cluster, name string) error {
	_, err := c.ECS.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:      aws.String(cluster),
		Service:      aws.String(name),
		DesiredCount: aws.Int32(0),
	})
	if err != nil {
		return fmt.Errorf("failed to scale service %s to zero: %w", name, err)
	}
	return nil
}

func (c *Clients) DeleteService(ctx context.Context, cluster, name string) error {
	_, err := c.ECS.DeleteService(ctx, &ecs.DeleteServiceInput{
		Cluster: aws.String(cluster),
		Service: aws.String(name),
		Force:   aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", name, err)
	}
	return nil
}
