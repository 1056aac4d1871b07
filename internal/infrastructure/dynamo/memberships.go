package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-room-notify/internal/domain"
)

// MembershipRepo provides read access to the externally-owned memberships
// table. This service never writes memberships; it only lists members for
// broadcast fan-out.
type MembershipRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMembershipRepo(client *dynamodb.Client, tableName string) *MembershipRepo {
	return &MembershipRepo{client: client, tableName: tableName}
}

// ListByStatus queries the status GSI across all pages: a broadcast must
// reach every approved member, not just the first page.
func (r *MembershipRepo) ListByStatus(ctx context.Context, status string) ([]domain.Membership, error) {
	items, err := queryAllPages(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("status-index"),
		KeyConditionExpression: aws.String("#st = :s"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: status},
		},
	})
	if err != nil {
		return nil, err
	}
	var memberships []domain.Membership
	if err := attributevalue.UnmarshalListOfMaps(items, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}
