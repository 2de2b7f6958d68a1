package reconcile

import (
	"fmt"
	"io"
	"strings"

	"github.com/gantry-io/gantry/internal/stack"
)

// WriteReport prints the operator-facing key-value block after a provision
// run: the credential pair (shown exactly once, never persisted) and the
// identifiers to transcribe into CI secrets. Plain lines on purpose; this
// is for a human, not a parser.
func WriteReport(w io.Writer, cfg stack.Config, p *Provisioned) {
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w, "Copy these values into your CI configuration secrets:")
	fmt.Fprintln(w)

	if p.Key != nil {
		fmt.Fprintf(w, "AWS_ACCESS_KEY_ID:     %s\n", p.Key.ID)
		fmt.Fprintf(w, "AWS_SECRET_ACCESS_KEY: %s\n", p.Key.Secret)
	} else if p.KeyQuotaReached {
		fmt.Fprintf(w, "AWS_ACCESS_KEY_ID:     <reuse existing keys for %s, or rotate one manually>\n", cfg.CIUserName)
		fmt.Fprintf(w, "AWS_SECRET_ACCESS_KEY: <reuse existing keys for %s, or rotate one manually>\n", cfg.CIUserName)
	}
	if p.AccountID != "" {
		fmt.Fprintf(w, "AWS_ACCOUNT_ID:        %s\n", p.AccountID)
	}
	fmt.Fprintf(w, "AWS_REGION:            %s\n", cfg.Region)
	fmt.Fprintf(w, "ECR_REPOSITORY_URI:    %s\n", p.RepositoryURI)
	fmt.Fprintf(w, "ECS_CLUSTER:           %s\n", cfg.ClusterName)
	fmt.Fprintf(w, "ECS_SERVICE:           %s\n", cfg.ServiceName)
	fmt.Fprintf(w, "ECS_TASK_FAMILY:       %s\n", cfg.TaskFamily)
	fmt.Fprintln(w, strings.Repeat("-", 60))
}
