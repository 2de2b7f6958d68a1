package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

// ProbeRepository reports whether the image repository exists. Query
// failures are normalized to absent; the create path re-reads afterwards so
// a false absent only costs an already-exists error surfaced there.
func (c *Clients) ProbeRepository(ctx context.Context, name string) ResourceStatus {
	out, err := c.ECR.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil || len(out.Repositories) == 0 {
		return StatusAbsent
	}
	return StatusActive
}

// CreateRepository creates the image repository.
func (c *Clients) CreateRepository(ctx context.Context, name string) error {
	_, err := c.ECR.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to create repository %s: %w", name, err)
	}
	return nil
}

// RepositoryURI re-reads the repository and returns its canonical URI.
func (c *Clients) RepositoryURI(ctx context.Context, name string) (string, error) {
	out, err := c.ECR.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe repository %s: %w", name, err)
	}
	if len(out.Repositories) == 0 {
		return "", fmt.Errorf("repository %s not found after create", name)
	}
	return aws.ToString(out.Repositories[0].RepositoryUri), nil
}

// DeleteRepository force-deletes the repository including stored images.
func (c *Clients) DeleteRepository(ctx context.Context, name string) error {
	_, err := c.ECR.DeleteRepository(ctx, &ecr.DeleteRepositoryInput{
		RepositoryName: aws.String(name),
		Force:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete repository %s: %w", name, err)
	}
	return nil
}
