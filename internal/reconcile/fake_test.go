package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logstypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/gantry-io/gantry/internal/cloud"
)

// fakeAWS is an in-memory control plane implementing every cloud.*API
// interface. It records call order and counts, and lets tests inject
// per-operation failures.
type fakeAWS struct {
	repos        map[string]bool
	clusters     map[string]string // name -> status
	services     map[string]string // cluster/name -> status
	taskRevs     map[string][]string
	roles        map[string]string // name -> arn
	rolePolicies map[string][]string
	users        map[string]bool
	userPolicies map[string][]string
	accessKeys   map[string][]string
	logGroups    map[string]bool
	vpcID        string
	subnetIDs    []string
	secGroups    map[string]string // name -> id

	lastTaskInput    *ecs.RegisterTaskDefinitionInput
	lastServiceInput *ecs.CreateServiceInput

	calls map[string]int
	order []string
	fail  map[string]error

	nextKey int
}

func newFakeAWS() *fakeAWS {
	return &fakeAWS{
		repos:        map[string]bool{},
		clusters:     map[string]string{},
		services:     map[string]string{},
		taskRevs:     map[string][]string{},
		roles:        map[string]string{},
		rolePolicies: map[string][]string{},
		users:        map[string]bool{},
		userPolicies: map[string][]string{},
		accessKeys:   map[string][]string{},
		logGroups:    map[string]bool{},
		vpcID:        "vpc-0feed0",
		subnetIDs:    []string{"subnet-aaa", "subnet-bbb"},
		secGroups:    map[string]string{},
		calls:        map[string]int{},
		fail:         map[string]error{},
	}
}

func (f *fakeAWS) clients() *cloud.Clients {
	return &cloud.Clients{ECR: f, ECS: f, EC2: f, IAM: f, Logs: f, STS: f}
}

func (f *fakeAWS) call(op string) error {
	f.order = append(f.order, op)
	f.calls[op]++
	return f.fail[op]
}

// callIndex returns the position of the first occurrence of op, or -1.
func (f *fakeAWS) callIndex(op string) int {
	for i, o := range f.order {
		if o == op {
			return i
		}
	}
	return -1
}

// --- ECR ---

func (f *fakeAWS) DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	if err := f.call("DescribeRepositories"); err != nil {
		return nil, err
	}
	name := params.RepositoryNames[0]
	if !f.repos[name] {
		return nil, fmt.Errorf("RepositoryNotFoundException: %s", name)
	}
	return &ecr.DescribeRepositoriesOutput{
		Repositories: []ecrtypes.Repository{
			{
				RepositoryName: aws.String(name),
				RepositoryUri:  aws.String("123456789012.dkr.ecr.us-east-1.amazonaws.com/" + name),
			},
		},
	}, nil
}

func (f *fakeAWS) CreateRepository(ctx context.Context, params *ecr.CreateRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.CreateRepositoryOutput, error) {
	if err := f.call("CreateRepository"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RepositoryName)
	f.repos[name] = true
	return &ecr.CreateRepositoryOutput{
		Repository: &ecrtypes.Repository{RepositoryName: params.RepositoryName},
	}, nil
}

func (f *fakeAWS) DeleteRepository(ctx context.Context, params *ecr.DeleteRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.DeleteRepositoryOutput, error) {
	if err := f.call("DeleteRepository"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RepositoryName)
	if !f.repos[name] {
		return nil, fmt.Errorf("RepositoryNotFoundException: %s", name)
	}
	delete(f.repos, name)
	return &ecr.DeleteRepositoryOutput{}, nil
}

// --- ECS ---

func (f *fakeAWS) DescribeClusters(ctx context.Context, params *ecs.DescribeClustersInput, optFns ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error) {
	if err := f.call("DescribeClusters"); err != nil {
		return nil, err
	}
	name := params.Clusters[0]
	status, ok := f.clusters[name]
	if !ok {
		return &ecs.DescribeClustersOutput{}, nil
	}
	return &ecs.DescribeClustersOutput{
		Clusters: []ecstypes.Cluster{
			{ClusterName: aws.String(name), Status: aws.String(status)},
		},
	}, nil
}

func (f *fakeAWS) CreateCluster(ctx context.Context, params *ecs.CreateClusterInput, optFns ...func(*ecs.Options)) (*ecs.CreateClusterOutput, error) {
	if err := f.call("CreateCluster"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.ClusterName)
	f.clusters[name] = "ACTIVE"
	return &ecs.CreateClusterOutput{
		Cluster: &ecstypes.Cluster{ClusterName: params.ClusterName, Status: aws.String("ACTIVE")},
	}, nil
}

func (f *fakeAWS) DeleteCluster(ctx context.Context, params *ecs.DeleteClusterInput, optFns ...func(*ecs.Options)) (*ecs.DeleteClusterOutput, error) {
	if err := f.call("DeleteCluster"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.Cluster)
	if _, ok := f.clusters[name]; !ok {
		return nil, fmt.Errorf("ClusterNotFoundException: %s", name)
	}
	delete(f.clusters, name)
	return &ecs.DeleteClusterOutput{}, nil
}

func (f *fakeAWS) DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error) {
	if err := f.call("DescribeServices"); err != nil {
		return nil, err
	}
	key := aws.ToString(params.Cluster) + "/" + params.Services[0]
	status, ok := f.services[key]
	if !ok {
		return &ecs.DescribeServicesOutput{}, nil
	}
	return &ecs.DescribeServicesOutput{
		Services: []ecstypes.Service{
			{ServiceName: aws.String(params.Services[0]), Status: aws.String(status)},
		},
	}, nil
}

func (f *fakeAWS) CreateService(ctx context.Context, params *ecs.CreateServiceInput, optFns ...func(*ecs.Options)) (*ecs.CreateServiceOutput, error) {
	if err := f.call("CreateService"); err != nil {
		return nil, err
	}
	f.lastServiceInput = params
	key := aws.ToString(params.Cluster) + "/" + aws.ToString(params.ServiceName)
	f.services[key] = "ACTIVE"
	return &ecs.CreateServiceOutput{
		Service: &ecstypes.Service{ServiceName: params.ServiceName, Status: aws.String("ACTIVE")},
	}, nil
}

func (f *fakeAWS) UpdateService(ctx context.Context, params *ecs.UpdateServiceInput, optFns ...func(*ecs.Options)) (*ecs.UpdateServiceOutput, error) {
	if err := f.call("UpdateService"); err != nil {
		return nil, err
	}
	key := aws.ToString(params.Cluster) + "/" + aws.ToString(params.Service)
	if _, ok := f.services[key]; !ok {
		return nil, fmt.Errorf("ServiceNotFoundException: %s", key)
	}
	return &ecs.UpdateServiceOutput{}, nil
}

func (f *fakeAWS) DeleteService(ctx context.Context, params *ecs.DeleteServiceInput, optFns ...func(*ecs.Options)) (*ecs.DeleteServiceOutput, error) {
	if err := f.call("DeleteService"); err != nil {
		return nil, err
	}
	key := aws.ToString(params.Cluster) + "/" + aws.ToString(params.Service)
	if _, ok := f.services[key]; !ok {
		return nil, fmt.Errorf("ServiceNotFoundException: %s", key)
	}
	delete(f.services, key)
	return &ecs.DeleteServiceOutput{}, nil
}

func (f *fakeAWS) RegisterTaskDefinition(ctx context.Context, params *ecs.RegisterTaskDefinitionInput, optFns ...func(*ecs.Options)) (*ecs.RegisterTaskDefinitionOutput, error) {
	if err := f.call("RegisterTaskDefinition"); err != nil {
		return nil, err
	}
	f.lastTaskInput = params
	family := aws.ToString(params.Family)
	rev := len(f.taskRevs[family]) + 1
	arn := fmt.Sprintf("arn:aws:ecs:us-east-1:123456789012:task-definition/%s:%d", family, rev)
	f.taskRevs[family] = append(f.taskRevs[family], arn)
	return &ecs.RegisterTaskDefinitionOutput{
		TaskDefinition: &ecstypes.TaskDefinition{
			TaskDefinitionArn: aws.String(arn),
			Family:            params.Family,
		},
	}, nil
}

func (f *fakeAWS) ListTaskDefinitions(ctx context.Context, params *ecs.ListTaskDefinitionsInput, optFns ...func(*ecs.Options)) (*ecs.ListTaskDefinitionsOutput, error) {
	if err := f.call("ListTaskDefinitions"); err != nil {
		return nil, err
	}
	family := aws.ToString(params.FamilyPrefix)
	return &ecs.ListTaskDefinitionsOutput{
		TaskDefinitionArns: append([]string(nil), f.taskRevs[family]...),
	}, nil
}

func (f *fakeAWS) DeregisterTaskDefinition(ctx context.Context, params *ecs.DeregisterTaskDefinitionInput, optFns ...func(*ecs.Options)) (*ecs.DeregisterTaskDefinitionOutput, error) {
	if err := f.call("DeregisterTaskDefinition"); err != nil {
		return nil, err
	}
	arn := aws.ToString(params.TaskDefinition)
	for family, revs := range f.taskRevs {
		kept := revs[:0]
		for _, r := range revs {
			if r != arn {
				kept = append(kept, r)
			}
		}
		f.taskRevs[family] = kept
	}
	return &ecs.DeregisterTaskDefinitionOutput{}, nil
}

// --- EC2 ---

func (f *fakeAWS) DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	if err := f.call("DescribeVpcs"); err != nil {
		return nil, err
	}
	if f.vpcID == "" {
		return &ec2.DescribeVpcsOutput{}, nil
	}
	return &ec2.DescribeVpcsOutput{
		Vpcs: []ec2types.Vpc{{VpcId: aws.String(f.vpcID), IsDefault: aws.Bool(true)}},
	}, nil
}

func (f *fakeAWS) DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	if err := f.call("DescribeSubnets"); err != nil {
		return nil, err
	}
	out := &ec2.DescribeSubnetsOutput{}
	for _, id := range f.subnetIDs {
		out.Subnets = append(out.Subnets, ec2types.Subnet{SubnetId: aws.String(id)})
	}
	return out, nil
}

func (f *fakeAWS) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	if err := f.call("DescribeSecurityGroups"); err != nil {
		return nil, err
	}
	var name string
	for _, filter := range params.Filters {
		if aws.ToString(filter.Name) == "group-name" {
			name = filter.Values[0]
		}
	}
	id, ok := f.secGroups[name]
	if !ok {
		return &ec2.DescribeSecurityGroupsOutput{}, nil
	}
	return &ec2.DescribeSecurityGroupsOutput{
		SecurityGroups: []ec2types.SecurityGroup{
			{GroupId: aws.String(id), GroupName: aws.String(name)},
		},
	}, nil
}

func (f *fakeAWS) CreateSecurityGroup(ctx context.Context, params *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error) {
	if err := f.call("CreateSecurityGroup"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.GroupName)
	id := fmt.Sprintf("sg-%04d", len(f.secGroups)+1)
	f.secGroups[name] = id
	return &ec2.CreateSecurityGroupOutput{GroupId: aws.String(id)}, nil
}

func (f *fakeAWS) AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	if err := f.call("AuthorizeSecurityGroupIngress"); err != nil {
		return nil, err
	}
	return &ec2.AuthorizeSecurityGroupIngressOutput{}, nil
}

func (f *fakeAWS) DeleteSecurityGroup(ctx context.Context, params *ec2.DeleteSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error) {
	if err := f.call("DeleteSecurityGroup"); err != nil {
		return nil, err
	}
	id := aws.ToString(params.GroupId)
	for name, existing := range f.secGroups {
		if existing == id {
			delete(f.secGroups, name)
			return &ec2.DeleteSecurityGroupOutput{}, nil
		}
	}
	return nil, fmt.Errorf("InvalidGroup.NotFound: %s", id)
}

// --- IAM ---

func roleARN(name string) string {
	return "arn:aws:iam::123456789012:role/" + name
}

func (f *fakeAWS) GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	if err := f.call("GetRole"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RoleName)
	arn, ok := f.roles[name]
	if !ok {
		return nil, fmt.Errorf("NoSuchEntity: role %s", name)
	}
	return &iam.GetRoleOutput{
		Role: &iamtypes.Role{RoleName: params.RoleName, Arn: aws.String(arn)},
	}, nil
}

func (f *fakeAWS) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	if err := f.call("CreateRole"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RoleName)
	f.roles[name] = roleARN(name)
	return &iam.CreateRoleOutput{
		Role: &iamtypes.Role{RoleName: params.RoleName, Arn: aws.String(f.roles[name])},
	}, nil
}

func (f *fakeAWS) DeleteRole(ctx context.Context, params *iam.DeleteRoleInput, optFns ...func(*iam.Options)) (*iam.DeleteRoleOutput, error) {
	if err := f.call("DeleteRole"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RoleName)
	if _, ok := f.roles[name]; !ok {
		return nil, fmt.Errorf("NoSuchEntity: role %s", name)
	}
	delete(f.roles, name)
	return &iam.DeleteRoleOutput{}, nil
}

func (f *fakeAWS) ListAttachedRolePolicies(ctx context.Context, params *iam.ListAttachedRolePoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedRolePoliciesOutput, error) {
	if err := f.call("ListAttachedRolePolicies"); err != nil {
		return nil, err
	}
	out := &iam.ListAttachedRolePoliciesOutput{}
	for _, arn := range f.rolePolicies[aws.ToString(params.RoleName)] {
		out.AttachedPolicies = append(out.AttachedPolicies, iamtypes.AttachedPolicy{PolicyArn: aws.String(arn)})
	}
	return out, nil
}

func (f *fakeAWS) AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	if err := f.call("AttachRolePolicy"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RoleName)
	f.rolePolicies[name] = append(f.rolePolicies[name], aws.ToString(params.PolicyArn))
	return &iam.AttachRolePolicyOutput{}, nil
}

func (f *fakeAWS) DetachRolePolicy(ctx context.Context, params *iam.DetachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.DetachRolePolicyOutput, error) {
	if err := f.call("DetachRolePolicy"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.RoleName)
	arn := aws.ToString(params.PolicyArn)
	kept := f.rolePolicies[name][:0]
	found := false
	for _, a := range f.rolePolicies[name] {
		if a == arn {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	f.rolePolicies[name] = kept
	if !found {
		return nil, fmt.Errorf("NoSuchEntity: policy %s on role %s", arn, name)
	}
	return &iam.DetachRolePolicyOutput{}, nil
}

func (f *fakeAWS) GetUser(ctx context.Context, params *iam.GetUserInput, optFns ...func(*iam.Options)) (*iam.GetUserOutput, error) {
	if err := f.call("GetUser"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	if !f.users[name] {
		return nil, fmt.Errorf("NoSuchEntity: user %s", name)
	}
	return &iam.GetUserOutput{User: &iamtypes.User{UserName: params.UserName}}, nil
}

func (f *fakeAWS) CreateUser(ctx context.Context, params *iam.CreateUserInput, optFns ...func(*iam.Options)) (*iam.CreateUserOutput, error) {
	if err := f.call("CreateUser"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	f.users[name] = true
	return &iam.CreateUserOutput{User: &iamtypes.User{UserName: params.UserName}}, nil
}

func (f *fakeAWS) DeleteUser(ctx context.Context, params *iam.DeleteUserInput, optFns ...func(*iam.Options)) (*iam.DeleteUserOutput, error) {
	if err := f.call("DeleteUser"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	if !f.users[name] {
		return nil, fmt.Errorf("NoSuchEntity: user %s", name)
	}
	delete(f.users, name)
	return &iam.DeleteUserOutput{}, nil
}

func (f *fakeAWS) ListAttachedUserPolicies(ctx context.Context, params *iam.ListAttachedUserPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedUserPoliciesOutput, error) {
	if err := f.call("ListAttachedUserPolicies"); err != nil {
		return nil, err
	}
	out := &iam.ListAttachedUserPoliciesOutput{}
	for _, arn := range f.userPolicies[aws.ToString(params.UserName)] {
		out.AttachedPolicies = append(out.AttachedPolicies, iamtypes.AttachedPolicy{PolicyArn: aws.String(arn)})
	}
	return out, nil
}

func (f *fakeAWS) AttachUserPolicy(ctx context.Context, params *iam.AttachUserPolicyInput, optFns ...func(*iam.Options)) (*iam.AttachUserPolicyOutput, error) {
	if err := f.call("AttachUserPolicy"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	f.userPolicies[name] = append(f.userPolicies[name], aws.ToString(params.PolicyArn))
	return &iam.AttachUserPolicyOutput{}, nil
}

func (f *fakeAWS) DetachUserPolicy(ctx context.Context, params *iam.DetachUserPolicyInput, optFns ...func(*iam.Options)) (*iam.DetachUserPolicyOutput, error) {
	if err := f.call("DetachUserPolicy"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	arn := aws.ToString(params.PolicyArn)
	kept := f.userPolicies[name][:0]
	for _, a := range f.userPolicies[name] {
		if a != arn {
			kept = append(kept, a)
		}
	}
	f.userPolicies[name] = kept
	return &iam.DetachUserPolicyOutput{}, nil
}

func (f *fakeAWS) CreateAccessKey(ctx context.Context, params *iam.CreateAccessKeyInput, optFns ...func(*iam.Options)) (*iam.CreateAccessKeyOutput, error) {
	if err := f.call("CreateAccessKey"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	if len(f.accessKeys[name]) >= 2 {
		return nil, &iamtypes.LimitExceededException{Message: aws.String("Cannot exceed quota for AccessKeysPerUser: 2")}
	}
	f.nextKey++
	id := fmt.Sprintf("AKIAFAKE%08d", f.nextKey)
	f.accessKeys[name] = append(f.accessKeys[name], id)
	return &iam.CreateAccessKeyOutput{
		AccessKey: &iamtypes.AccessKey{
			AccessKeyId:     aws.String(id),
			SecretAccessKey: aws.String("secret-" + id),
		},
	}, nil
}

func (f *fakeAWS) ListAccessKeys(ctx context.Context, params *iam.ListAccessKeysInput, optFns ...func(*iam.Options)) (*iam.ListAccessKeysOutput, error) {
	if err := f.call("ListAccessKeys"); err != nil {
		return nil, err
	}
	out := &iam.ListAccessKeysOutput{}
	for _, id := range f.accessKeys[aws.ToString(params.UserName)] {
		out.AccessKeyMetadata = append(out.AccessKeyMetadata, iamtypes.AccessKeyMetadata{AccessKeyId: aws.String(id)})
	}
	return out, nil
}

func (f *fakeAWS) DeleteAccessKey(ctx context.Context, params *iam.DeleteAccessKeyInput, optFns ...func(*iam.Options)) (*iam.DeleteAccessKeyOutput, error) {
	if err := f.call("DeleteAccessKey"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.UserName)
	id := aws.ToString(params.AccessKeyId)
	kept := f.accessKeys[name][:0]
	for _, k := range f.accessKeys[name] {
		if k != id {
			kept = append(kept, k)
		}
	}
	f.accessKeys[name] = kept
	return &iam.DeleteAccessKeyOutput{}, nil
}

// --- CloudWatch Logs ---

func (f *fakeAWS) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	if err := f.call("DescribeLogGroups"); err != nil {
		return nil, err
	}
	prefix := aws.ToString(params.LogGroupNamePrefix)
	out := &cloudwatchlogs.DescribeLogGroupsOutput{}
	for name := range f.logGroups {
		if strings.HasPrefix(name, prefix) {
			out.LogGroups = append(out.LogGroups, logstypes.LogGroup{LogGroupName: aws.String(name)})
		}
	}
	return out, nil
}

func (f *fakeAWS) CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	if err := f.call("CreateLogGroup"); err != nil {
		return nil, err
	}
	f.logGroups[aws.ToString(params.LogGroupName)] = true
	return &cloudwatchlogs.CreateLogGroupOutput{}, nil
}

func (f *fakeAWS) PutRetentionPolicy(ctx context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error) {
	if err := f.call("PutRetentionPolicy"); err != nil {
		return nil, err
	}
	return &cloudwatchlogs.PutRetentionPolicyOutput{}, nil
}

func (f *fakeAWS) DeleteLogGroup(ctx context.Context, params *cloudwatchlogs.DeleteLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	if err := f.call("DeleteLogGroup"); err != nil {
		return nil, err
	}
	name := aws.ToString(params.LogGroupName)
	if !f.logGroups[name] {
		return nil, fmt.Errorf("ResourceNotFoundException: %s", name)
	}
	delete(f.logGroups, name)
	return &cloudwatchlogs.DeleteLogGroupOutput{}, nil
}

// --- STS ---

func (f *fakeAWS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if err := f.call("GetCallerIdentity"); err != nil {
		return nil, err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil
}
