package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretValueGetter — минимальный срез клиента Secrets Manager; нужен для
// подмены в тестах.
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ManagerSource читает JSON-документ секрета из AWS Secrets Manager.
type ManagerSource struct {
	client      secretValueGetter
	secretID    string
	defaultPort int
}

// NewManagerSource создаёт источник с дефолтной цепочкой AWS-конфигурации
// (окружение, shared config, IAM-роль).
func NewManagerSource(ctx context.Context, secretID string, defaultPort int) (*ManagerSource, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &ManagerSource{
		client:      secretsmanager.NewFromConfig(cfg),
		secretID:    secretID,
		defaultPort: defaultPort,
	}, nil
}

// NewManagerSourceWithClient создаёт источник поверх готового клиента.
func NewManagerSourceWithClient(client secretValueGetter, secretID string, defaultPort int) *ManagerSource {
	return &ManagerSource{client: client, secretID: secretID, defaultPort: defaultPort}
}

func (s *ManagerSource) Resolve(ctx context.Context) (DBCredentials, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretID),
	})
	if err != nil {
		return DBCredentials{}, fmt.Errorf("get secret value %q: %w", s.secretID, err)
	}

	raw := out.SecretBinary
	if out.SecretString != nil {
		raw = []byte(aws.ToString(out.SecretString))
	}
	if len(raw) == 0 {
		return DBCredentials{}, fmt.Errorf("secret %q has empty payload", s.secretID)
	}

	return ParseDocument(raw, s.defaultPort)
}
