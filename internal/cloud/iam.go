package cloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/smithy-go"
)

// ErrKeyQuotaReached signals that the principal already holds the maximum
// of two access keys. Non-fatal: the operator keeps using the existing keys
// or rotates one manually.
var ErrKeyQuotaReached = errors.New("access key quota reached for user")

// AccessKey is one freshly minted credential pair. The secret is shown once
// and never persisted.
type AccessKey struct {
	ID     string
	Secret string
}

// ProbeRole reports whether the role exists. IAM has no inactive state for
// roles, so the probe is binary.
func (c *Clients) ProbeRole(ctx context.Context, name string) ResourceStatus {
	_, err := c.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err != nil {
		return StatusAbsent
	}
	return StatusActive
}

// CreateRole creates the role with the given trust policy and returns its ARN.
func (c *Clients) CreateRole(ctx context.Context, name, trustPolicy string) (string, error) {
	out, err := c.IAM.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(trustPolicy),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role %s: %w", name, err)
	}
	return aws.ToString(out.Role.Arn), nil
}

// RoleARN resolves an existing role's ARN.
func (c *Clients) RoleARN(ctx context.Context, name string) (string, error) {
	out, err := c.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err != nil {
		return "", fmt.Errorf("failed to get role %s: %w", name, err)
	}
	return aws.ToString(out.Role.Arn), nil
}

// EnsureRolePolicy attaches the managed policy unless it is already
// attached. The read-then-attach pair is not atomic, but attachment itself
// is idempotent on the provider side.
func (c *Clients) EnsureRolePolicy(ctx context.Context, roleName, policyARN string) error {
	attached, err := c.IAM.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return fmt.Errorf("failed to list attached policies for %s: %w", roleName, err)
	}
	for _, p := range attached.AttachedPolicies {
		if aws.ToString(p.PolicyArn) == policyARN {
			return nil
		}
	}
	_, err = c.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to attach policy %s to role %s: %w", policyARN, roleName, err)
	}
	return nil
}

func (c *Clients) DetachRolePolicy(ctx context.Context, roleName, policyARN string) error {
	_, err := c.IAM.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to detach policy %s from role %s: %w", policyARN, roleName, err)
	}
	return nil
}

func (c *Clients) DeleteRole(ctx context.Context, name string) error {
	_, err := c.IAM.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: aws.String(name)})
	if err != nil {
		return fmt.Errorf("failed to delete role %s: %w", name, err)
	}
	return nil
}

// ProbeUser reports whether the CI principal exists.
func (c *Clients) ProbeUser(ctx context.Context, name string) ResourceStatus {
	_, err := c.IAM.GetUser(ctx, &iam.GetUserInput{UserName: aws.String(name)})
	if err != nil {
		return StatusAbsent
	}
	return StatusActive
}

func (c *Clients) CreateUser(ctx context.Context, name string) error {
	_, err := c.IAM.CreateUser(ctx, &iam.CreateUserInput{UserName: aws.String(name)})
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", name, err)
	}
	return nil
}

func (c *Clients) AttachUserPolicy(ctx context.Context, userName, policyARN string) error {
	_, err := c.IAM.AttachUserPolicy(ctx, &iam.AttachUserPolicyInput{
		UserName:  aws.String(userName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to attach policy %s to user %s: %w", policyARN, userName, err)
	}
	return nil
}

// ListUserPolicies returns the ARNs of managed policies attached to the user.
func (c *Clients) ListUserPolicies(ctx context.Context, userName string) ([]string, error) {
	out, err := c.IAM.ListAttachedUserPolicies(ctx, &iam.ListAttachedUserPoliciesInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attached policies for user %s: %w", userName, err)
	}
	var arns []string
	for _, p := range out.AttachedPolicies {
		arns = append(arns, aws.ToString(p.PolicyArn))
	}
	return arns, nil
}

func (c *Clients) DetachUserPolicy(ctx context.Context, userName, policyARN string) error {
	_, err := c.IAM.DetachUserPolicy(ctx, &iam.DetachUserPolicyInput{
		UserName:  aws.String(userName),
		PolicyArn: aws.String(policyARN),
	})
	if err != nil {
		return fmt.Errorf("failed to detach policy %s from user %s: %w", policyARN, userName, err)
	}
	return nil
}

func (c *Clients) DeleteUser(ctx context.Context, name string) error {
	_, err := c.IAM.DeleteUser(ctx, &iam.DeleteUserInput{UserName: aws.String(name)})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", name, err)
	}
	return nil
}

// CreateAccessKey mints a new key pair for the user. Hitting the two-key
// limit returns ErrKeyQuotaReached so callers can surface "reuse existing
// keys" instead of failing the run.
func (c *Clients) CreateAccessKey(ctx context.Context, userName string) (*AccessKey, error) {
	out, err := c.IAM.CreateAccessKey(ctx, &iam.CreateAccessKeyInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "LimitExceeded" {
			return nil, ErrKeyQuotaReached
		}
		return nil, fmt.Errorf("failed to create access key for %s: %w", userName, err)
	}
	return &AccessKey{
		ID:     aws.ToString(out.AccessKey.AccessKeyId),
		Secret: aws.ToString(out.AccessKey.SecretAccessKey),
	}, nil
}

// ListAccessKeyIDs returns the ids of every live key held by the user.
func (c *Clients) ListAccessKeyIDs(ctx context.Context, userName string) ([]string, error) {
	out, err := c.IAM.ListAccessKeys(ctx, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list access keys for %s: %w", userName, err)
	}
	var ids []string
	for _, k := range out.AccessKeyMetadata {
		ids = append(ids, aws.ToString(k.AccessKeyId))
	}
	return ids, nil
}

func (c *Clients) DeleteAccessKey(ctx context.Context, userName, keyID string) error {
	_, err := c.IAM.DeleteAccessKey(ctx, &iam.DeleteAccessKeyInput{
		UserName:    aws.String(userName),
		AccessKeyId: aws.String(keyID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete access key %s: %w", keyID, err)
	}
	return nil
}
