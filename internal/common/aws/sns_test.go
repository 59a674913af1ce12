package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func TestSNSClient_Publish(t *testing.T) {
	var captured *sns.PublishInput
	client := NewSNSClientFromAPI(&MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			captured = params
			return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
		},
	})

	id, err := client.Publish(context.Background(), "arn:aws:sns:us-east-2:000000000000:forms", "Subject", "Body")
	require.NoError(t, err)

	assert.Equal(t, "msg-123", id)
	require.NotNil(t, captured)
	assert.Equal(t, "arn:aws:sns:us-east-2:000000000000:forms", aws.ToString(captured.TopicArn))
	assert.Equal(t, "Subject", aws.ToString(captured.Subject))
	assert.Equal(t, "Body", aws.ToString(captured.Message))
}

func TestSNSClient_PublishError(t *testing.T) {
	client := NewSNSClientFromAPI(&MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("AuthorizationError")
		},
	})

	id, err := client.Publish(context.Background(), "arn:topic", "s", "b")
	require.Error(t, err)
	assert.Empty(t, id)
	assert.Contains(t, err.Error(), "sns publish")
	assert.Contains(t, err.Error(), "AuthorizationError")
}
