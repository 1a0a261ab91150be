package secret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/hamed0406/webmonitor/internal/domain"
)

// SecretsAPI is the slice of the Secrets Manager client we consume.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var _ Resolver = (*AWSResolver)(nil)

type AWSResolver struct {
	Client  SecretsAPI
	Timeout time.Duration
}

func NewAWSResolver(ctx context.Context, timeout time.Duration) (*AWSResolver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrUnavailable, err)
	}
	return &AWSResolver{
		Client:  secretsmanager.NewFromConfig(cfg),
		Timeout: timeout,
	}, nil
}

func (r *AWSResolver) Resolve(ctx context.Context, secretID string, ch domain.Channel) (domain.Credentials, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	out, err := r.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var nf *smtypes.ResourceNotFoundException
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, secretID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var raw []byte
	switch {
	case out.SecretString != nil:
		raw = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		raw = out.SecretBinary
	default:
		return nil, fmt.Errorf("%w: secret %s has no payload", ErrMalformed, secretID)
	}
	return Decode(raw, ch)
}
