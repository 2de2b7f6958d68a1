package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// ProbeLogGroup reports whether the log group exists. DescribeLogGroups
// matches by prefix and can over-match ("/ecs/app" also returns
// "/ecs/app-staging"), so results are filtered to the exact name.
func (c *Clients) ProbeLogGroup(ctx context.Context, name string) ResourceStatus {
	out, err := c.Logs.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(name),
	})
	if err != nil {
		return StatusAbsent
	}
	for _, g := range out.LogGroups {
		if aws.ToString(g.LogGroupName) == name {
			return StatusActive
		}
	}
	return StatusAbsent
}

// CreateLogGroup creates the group and applies the retention policy. Task
// registration references the group by exact name, so it must exist before
// the first task launch.
func (c *Clients) CreateLogGroup(ctx context.Context, name string, retentionDays int32) error {
	_, err := c.Logs.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to create log group %s: %w", name, err)
	}
	if retentionDays > 0 {
		_, err = c.Logs.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
			LogGroupName:    aws.String(name),
			RetentionInDays: aws.Int32(retentionDays),
		})
		if err != nil {
			return fmt.Errorf("failed to put retention policy on %s: %w", name, err)
		}
	}
	return nil
}

func (c *Clients) DeleteLogGroup(ctx context.Context, name string) error {
	_, err := c.Logs.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete log group %s: %w", name, err)
	}
	return nil
}
