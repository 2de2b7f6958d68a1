package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Network is the discovered default-VPC context a service launches into.
type Network struct {
	VpcID     string
	SubnetIDs []string
}

// DiscoverNetwork locates the account's default VPC and its subnets. There
// is no fallback VPC creation: accounts without a default VPC fail the run.
func (c *Clients) DiscoverNetwork(ctx context.Context) (*Network, error) {
	vpcs, err := c.EC2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{
			{Name: aws.String("isDefault"), Values: []string{"true"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPCs: %w", err)
	}
	if len(vpcs.Vpcs) == 0 {
		return nil, fmt.Errorf("no default VPC in this account/region; create one or supply networking out of band")
	}
	vpcID := aws.ToString(vpcs.Vpcs[0].VpcId)

	subnets, err := c.EC2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets for %s: %w", vpcID, err)
	}
	if len(subnets.Subnets) == 0 {
		return nil, fmt.Errorf("default VPC %s has no subnets", vpcID)
	}

	net := &Network{VpcID: vpcID}
	for _, s := range subnets.Subnets {
		net.SubnetIDs = append(net.SubnetIDs, aws.ToString(s.SubnetId))
	}
	return net, nil
}

// FindSecurityGroup looks the group up by name within the VPC. Returns the
// group id, or "" when no such group exists.
func (c *Clients) FindSecurityGroup(ctx context.Context, vpcID, name string) (string, error) {
	out, err := c.EC2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []types.Filter{
			{Name: aws.String("group-name"), Values: []string{name}},
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil || len(out.SecurityGroups) == 0 {
		return "", nil
	}
	return aws.ToString(out.SecurityGroups[0].GroupId), nil
}

// CreateSecurityGroup creates the group and opens the container port to all
// sources. Existing groups are reused as-is with no rule reconciliation.
func (c *Clients) CreateSecurityGroup(ctx context.Context, vpcID, name string, port int32) (string, error) {
	created, err := c.EC2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String("inbound access for the deploy-target service"),
		VpcId:       aws.String(vpcID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create security group %s: %w", name, err)
	}
	groupID := aws.ToString(created.GroupId)

	_, err = c.EC2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:    aws.String(groupID),
		IpProtocol: aws.String("tcp"),
		FromPort:   aws.Int32(port),
		ToPort:     aws.Int32(port),
		CidrIp:     aws.String("0.0.0.0/0"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to authorize ingress on %s: %w", groupID, err)
	}
	return groupID, nil
}

func (c *Clients) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	_, err := c.EC2.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete security group %s: %w", groupID, err)
	}
	return nil
}
