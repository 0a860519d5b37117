package passphrase

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the subset of the SSM client used to fetch a passphrase.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type ssmSource struct {
	name   string
	client func(ctx context.Context) (ParameterGetter, error)
}

// NewSSM returns a Source that reads the passphrase from the AWS SSM
// parameter with the given name. AWS configuration is loaded from the
// default chain the first time the passphrase is needed.
func NewSSM(name string) Source {
	return &ssmSource{
		name: name,
		client: func(ctx context.Context) (ParameterGetter, error) {
			awsConfig, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				return nil, fmt.Errorf("loading aws default config: %w", err)
			}
			return ssm.NewFromConfig(awsConfig), nil
		},
	}
}

// NewSSMWithClient is NewSSM with an already constructed client.
func NewSSMWithClient(client ParameterGetter, name string) Source {
	return &ssmSource{
		name: name,
		client: func(context.Context) (ParameterGetter, error) {
			return client, nil
		},
	}
}

func (s *ssmSource) Passphrase(ctx context.Context) ([]byte, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugf("fetching passphrase from SSM parameter %s", s.name)
	response, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving passphrase: %w", err)
	}
	if response.Parameter == nil || response.Parameter.Value == nil || *response.Parameter.Value == "" {
		return nil, ErrNoPassphrase
	}
	return []byte(*response.Parameter.Value), nil
}
