package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePager replays canned query pages and records the start key of each
// call.
type fakePager struct {
	pages     []*dynamodb.QueryOutput
	errAt     int // 1-based call index that fails; 0 means never
	startKeys []map[string]types.AttributeValue
}

func (f *fakePager) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.startKeys = append(f.startKeys, in.ExclusiveStartKey)
	call := len(f.startKeys)
	if f.errAt == call {
		return nil, errors.New("throughput exceeded")
	}
	return f.pages[call-1], nil
}

func item(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"booking_id": &types.AttributeValueMemberS{Value: id},
	}
}

func TestQueryAllPages_DrainsEveryPage(t *testing.T) {
	// The middle page is empty with more to come: the filter ate the whole
	// 1MB evaluation. Items past it must still be returned.
	pager := &fakePager{pages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{item("b1")}, LastEvaluatedKey: item("b1")},
		{Items: nil, LastEvaluatedKey: item("b50")},
		{Items: []map[string]types.AttributeValue{item("b99"), item("b100")}},
	}}

	items, err := queryAllPages(context.Background(), pager, &dynamodb.QueryInput{})

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, item("b1"), items[0])
	assert.Equal(t, item("b100"), items[2])

	require.Len(t, pager.startKeys, 3)
	assert.Nil(t, pager.startKeys[0])
	assert.Equal(t, item("b1"), pager.startKeys[1])
	assert.Equal(t, item("b50"), pager.startKeys[2])
}

func TestQueryAllPages_SinglePage(t *testing.T) {
	pager := &fakePager{pages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{item("b1")}},
	}}

	items, err := queryAllPages(context.Background(), pager, &dynamodb.QueryInput{})

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Len(t, pager.startKeys, 1)
}

func TestQueryAllPages_MidPageError_Propagates(t *testing.T) {
	pager := &fakePager{
		pages: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{item("b1")}, LastEvaluatedKey: item("b1")},
			nil,
		},
		errAt: 2,
	}

	_, err := queryAllPages(context.Background(), pager, &dynamodb.QueryInput{})
	require.Error(t, err)
}
