// Package stream adapts DynamoDB Streams into the mutation triggers the
// event handlers expect: old+new snapshots on membership and booking
// updates, and creation events on rooms. It is a thin stand-in for a
// managed trigger dispatcher: best-effort, log-and-continue, no replay.
package stream

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	streamsav "github.com/aws/aws-sdk-go-v2/feature/dynamodbstreams/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
	"github.com/go-room-notify/internal/application/events"
	"github.com/go-room-notify/internal/config"
	"github.com/go-room-notify/internal/domain"
	"github.com/sirupsen/logrus"
)

const recordsPerPoll = 100

type Poller struct {
	db       *dynamodb.Client
	streams  *dynamodbstreams.Client
	handler  events.Service
	tables   config.DynamoTables
	interval time.Duration
	log      *logrus.Logger
}

func NewPoller(db *dynamodb.Client, streams *dynamodbstreams.Client, handler events.Service, cfg *config.Config, log *logrus.Logger) *Poller {
	return &Poller{
		db:       db,
		streams:  streams,
		handler:  handler,
		tables:   cfg.DynamoTables,
		interval: time.Duration(cfg.StreamPollInterval) * time.Second,
		log:      log,
	}
}

// Run starts one polling loop per watched table and returns. The loops stop
// when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	go p.pollTable(ctx, p.tables.Memberships, p.dispatchMembership)
	go p.pollTable(ctx, p.tables.Bookings, p.dispatchBooking)
	go p.pollTable(ctx, p.tables.Rooms, p.dispatchRoom)
}

// streamArn resolves the table's latest stream ARN, retrying until the
// table (and its stream) exists.
func (p *Poller) streamArn(ctx context.Context, table string) (string, bool) {
	for {
		out, err := p.db.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		})
		if err == nil && out.Table != nil && out.Table.LatestStreamArn != nil {
			return *out.Table.LatestStreamArn, true
		}
		if err != nil {
			p.log.WithError(err).Warnf("stream: describe table %s", table)
		}
		select {
		case <-ctx.Done():
			return "", false
		case <-time.After(p.interval):
		}
	}
}

// pollTable tails every shard of the table's stream. New shards start at
// LATEST: records written before a shard is first seen are the trigger
// infrastructure's loss, mirroring its at-least-once-from-subscription
// contract.
func (p *Poller) pollTable(ctx context.Context, table string, dispatch func(context.Context, streamtypes.Record)) {
	arn, ok := p.streamArn(ctx, table)
	if !ok {
		return
	}
	p.log.Infof("stream: polling %s", table)

	iterators := make(map[string]string)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		desc, err := p.streams.DescribeStream(ctx, &dynamodbstreams.DescribeStreamInput{
			StreamArn: aws.String(arn),
		})
		if err != nil {
			p.log.WithError(err).Warnf("stream: describe stream for %s", table)
		} else {
			for _, shard := range desc.StreamDescription.Shards {
				shardID := aws.ToString(shard.ShardId)
				if _, known := iterators[shardID]; known {
					continue
				}
				it, err := p.streams.GetShardIterator(ctx, &dynamodbstreams.GetShardIteratorInput{
					StreamArn:         aws.String(arn),
					ShardId:           shard.ShardId,
					ShardIteratorType: streamtypes.ShardIteratorTypeLatest,
				})
				if err != nil {
					p.log.WithError(err).Warnf("stream: shard iterator for %s", table)
					continue
				}
				iterators[shardID] = aws.ToString(it.ShardIterator)
			}
		}

		for shardID, iterator := range iterators {
			out, err := p.streams.GetRecords(ctx, &dynamodbstreams.GetRecordsInput{
				ShardIterator: aws.String(iterator),
				Limit:         aws.Int32(recordsPerPoll),
			})
			if err != nil {
				// Expired or malformed iterator; drop it and rediscover the
				// shard on the next pass.
				p.log.WithError(err).Warnf("stream: get records for %s", table)
				delete(iterators, shardID)
				continue
			}
			for _, rec := range out.Records {
				dispatch(ctx, rec)
			}
			if out.NextShardIterator == nil {
				delete(iterators, shardID)
				continue
			}
			iterators[shardID] = *out.NextShardIterator
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) dispatchMembership(ctx context.Context, rec streamtypes.Record) {
	if rec.EventName != streamtypes.OperationTypeModify || rec.Dynamodb == nil {
		return
	}
	var before, after domain.Membership
	if err := streamsav.UnmarshalMap(rec.Dynamodb.OldImage, &before); err != nil {
		p.log.WithError(err).Warn("stream: decode membership old image")
		return
	}
	if err := streamsav.UnmarshalMap(rec.Dynamodb.NewImage, &after); err != nil {
		p.log.WithError(err).Warn("stream: decode membership new image")
		return
	}
	if err := p.handler.MembershipStatusChanged(ctx, &before, &after); err != nil {
		p.log.WithError(err).WithField("membership_id", after.MembershipID).Error("stream: membership handler")
	}
}

func (p *Poller) dispatchBooking(ctx context.Context, rec streamtypes.Record) {
	if rec.EventName != streamtypes.OperationTypeModify || rec.Dynamodb == nil {
		return
	}
	var before, after domain.Booking
	if err := streamsav.UnmarshalMap(rec.Dynamodb.OldImage, &before); err != nil {
		p.log.WithError(err).Warn("stream: decode booking old image")
		return
	}
	if err := streamsav.UnmarshalMap(rec.Dynamodb.NewImage, &after); err != nil {
		p.log.WithError(err).Warn("stream: decode booking new image")
		return
	}
	if err := p.handler.BookingStatusChanged(ctx, &before, &after); err != nil {
		p.log.WithError(err).WithField("booking_id", after.BookingID).Error("stream: booking handler")
	}
}

func (p *Poller) dispatchRoom(ctx context.Context, rec streamtypes.Record) {
	if rec.EventName != streamtypes.OperationTypeInsert || rec.Dynamodb == nil {
		return
	}
	var room domain.Room
	if err := streamsav.UnmarshalMap(rec.Dynamodb.NewImage, &room); err != nil {
		p.log.WithError(err).Warn("stream: decode room image")
		return
	}
	if err := p.handler.RoomCreated(ctx, &room); err != nil {
		p.log.WithError(err).WithField("room_id", room.RoomID).Error("stream: room handler")
	}
}
