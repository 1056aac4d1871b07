package sns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-room-notify/internal/config"
	"golang.org/x/time/rate"
)

// Message is one multicast push delivery request: the same title/body and
// data payload fanned out to every token.
type Message struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// SendResult is the per-token delivery outcome. Invalid marks endpoints the
// gateway reports as permanently dead; callers should prune those.
type SendResult struct {
	Token   string
	Err     error
	Invalid bool
}

// PushGateway delivers one notification to many device endpoints. A nil
// error guarantees one SendResult per token, in the order of msg.Tokens.
type PushGateway interface {
	SendMulticast(ctx context.Context, msg Message) ([]SendResult, error)
}

type gateway struct {
	client  *sns.Client
	limiter *rate.Limiter
}

// NewGateway builds an SNS-backed push gateway. Outbound publishes share a
// token bucket so a large fan-out cannot exhaust the account publish quota.
func NewGateway(cfg *config.Config) (PushGateway, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return &gateway{
		client:  sns.NewFromConfig(awsCfg, clientOpts...),
		limiter: rate.NewLimiter(rate.Limit(cfg.PushRatePerSecond), cfg.PushBurst),
	}, nil
}

// payload is the JSON document published per endpoint.
type payload struct {
	Notification struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	} `json:"notification"`
	Data map[string]string `json:"data"`
}

// SendMulticast publishes to every token and reports per-token results. A
// per-token publish error never aborts the rest of the fan-out; only a
// failure to even build the request (or a dead context) surfaces as an
// error.
func (g *gateway) SendMulticast(ctx context.Context, msg Message) ([]SendResult, error) {
	var p payload
	p.Notification.Title = msg.Title
	p.Notification.Body = msg.Body
	p.Data = msg.Data
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal push payload: %w", err)
	}
	body := string(raw)

	results := make([]SendResult, 0, len(msg.Tokens))
	for _, token := range msg.Tokens {
		if err := g.limiter.Wait(ctx); err != nil {
			return results, err
		}
		_, err := g.client.Publish(ctx, &sns.PublishInput{
			TargetArn: aws.String(token),
			Message:   aws.String(body),
		})
		results = append(results, SendResult{
			Token:   token,
			Err:     err,
			Invalid: isEndpointInvalid(err),
		})
	}
	return results, nil
}

// isEndpointInvalid reports whether the publish error means the endpoint is
// permanently unusable, as opposed to a transient delivery failure.
func isEndpointInvalid(err error) bool {
	if err == nil {
		return false
	}
	var disabled *types.EndpointDisabledException
	if errors.As(err, &disabled) {
		return true
	}
	var notFound *types.NotFoundException
	if errors.As(err, &notFound) {
		return true
	}
	var invalid *types.InvalidParameterException
	return errors.As(err, &invalid)
}
