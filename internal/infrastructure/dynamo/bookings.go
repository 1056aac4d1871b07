package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-room-notify/internal/domain"
)

// transactCeiling is the DynamoDB TransactWriteItems item limit.
const transactCeiling = 100

// BookingRepo provides typed DynamoDB operations for the bookings table.
// start_time and end_time must be stored as whole-second UTC RFC3339
// strings (see timeAV) so the status+time GSIs sort them chronologically.
type BookingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBookingRepo(client *dynamodb.Client, tableName string) *BookingRepo {
	return &BookingRepo{client: client, tableName: tableName}
}

func (r *BookingRepo) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("booking_id", bookingID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
	}
	var b domain.Booking
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListApprovedByStartWindow returns approved bookings with start_time in
// (from, to] and the given one-shot flag still false.
func (r *BookingRepo) ListApprovedByStartWindow(ctx context.Context, from, to time.Time, flag domain.ReminderFlag) ([]domain.Booking, error) {
	return r.listWindow(ctx, "status-start_time-index", "start_time", from, to, flag)
}

// ListApprovedByEndWindow returns approved bookings with end_time in
// (from, to] and the given one-shot flag still false.
func (r *BookingRepo) ListApprovedByEndWindow(ctx context.Context, from, to time.Time, flag domain.ReminderFlag) ([]domain.Booking, error) {
	return r.listWindow(ctx, "status-end_time-index", "end_time", from, to, flag)
}

// listWindow drains every result page: the flag filter is applied after the
// page is read, so a sweep stopping at one page could miss bookings whose
// window never comes around again.
func (r *BookingRepo) listWindow(ctx context.Context, index, timeAttr string, from, to time.Time, flag domain.ReminderFlag) ([]domain.Booking, error) {
	items, err := queryAllPages(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#st = :approved AND #tm <= :to"),
		FilterExpression:       aws.String("#tm > :from AND #flag = :f"),
		ExpressionAttributeNames: map[string]string{
			"#st":   "status",
			"#tm":   timeAttr,
			"#flag": string(flag),
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":approved": &types.AttributeValueMemberS{Value: domain.BookingApproved},
			":from":     timeAV(from),
			":to":       timeAV(to),
			":f":        &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		return nil, err
	}
	var bookings []domain.Booking
	if err := attributevalue.UnmarshalListOfMaps(items, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListApprovedEndedBy returns approved bookings whose end_time is at or
// before the cutoff, for the auto-complete sweep.
func (r *BookingRepo) ListApprovedEndedBy(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	items, err := queryAllPages(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("status-end_time-index"),
		KeyConditionExpression: aws.String("#st = :approved AND #tm <= :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
			"#tm": "end_time",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":approved": &types.AttributeValueMemberS{Value: domain.BookingApproved},
			":cutoff":   timeAV(cutoff),
		},
	})
	if err != nil {
		return nil, err
	}
	var bookings []domain.Booking
	if err := attributevalue.UnmarshalListOfMaps(items, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ClaimReminderFlag flips a one-shot flag false→true with a conditional
// update. Returns domain.ErrConflict (wrapped) when the flag was already
// set, so concurrent sweep runs racing on the same booking resolve to one
// winner and the rest skip.
func (r *BookingRepo) ClaimReminderFlag(ctx context.Context, bookingID string, flag domain.ReminderFlag) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("booking_id", bookingID),
		UpdateExpression:    aws.String("SET #flag = :t, updated_at = :now"),
		ConditionExpression: aws.String("#flag = :f"),
		ExpressionAttributeNames: map[string]string{
			"#flag": string(flag),
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":   &types.AttributeValueMemberBOOL{Value: true},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
			":now": timeAV(time.Now().UTC()),
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("flag %s already set on booking %s: %w", flag, bookingID, domain.ErrConflict)
	}
	return err
}

// CompleteBatch sets status="completed" on every given booking in atomic
// transactions, each update conditioned on the booking still being approved.
// DynamoDB caps a transaction at 100 items, so larger sweeps commit in
// ceiling-sized chunks.
func (r *BookingRepo) CompleteBatch(ctx context.Context, bookingIDs []string) error {
	now := timeAV(time.Now().UTC())
	for start := 0; start < len(bookingIDs); start += transactCeiling {
		end := start + transactCeiling
		if end > len(bookingIDs) {
			end = len(bookingIDs)
		}
		items := make([]types.TransactWriteItem, 0, end-start)
		for _, id := range bookingIDs[start:end] {
			items = append(items, types.TransactWriteItem{
				Update: &types.Update{
					TableName:           aws.String(r.tableName),
					Key:                 strKey("booking_id", id),
					UpdateExpression:    aws.String("SET #st = :completed, updated_at = :now"),
					ConditionExpression: aws.String("#st = :approved"),
					ExpressionAttributeNames: map[string]string{
						"#st": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed": &types.AttributeValueMemberS{Value: domain.BookingCompleted},
						":approved":  &types.AttributeValueMemberS{Value: domain.BookingApproved},
						":now":       now,
					},
				},
			})
		}
		if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: items,
		}); err != nil {
			return fmt.Errorf("complete bookings %d..%d: %w", start, end, err)
		}
	}
	return nil
}

// timeAV encodes a query bound or write timestamp as a whole-second UTC
// RFC3339 string. The table contract requires writers to store start_time
// and end_time the same way: RFC3339Nano emits fractional seconds in
// variable width, which does not sort lexicographically ("...00.5Z" orders
// before "...00Z"), so only whole-second values keep the GSI string order
// chronological.
func timeAV(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: t.UTC().Truncate(time.Second).Format(time.RFC3339Nano)}
}
