package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"umroh_travel_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// followUpHour is the agency-local hour at which reminders fire.
const followUpHour = 8

// taskRetention keeps finished reminders around so a re-enqueue with the same
// task ID is rejected instead of sending twice.
const taskRetention = 48 * time.Hour

type Client struct {
	client *asynq.Client
	queue  string
	loc    *time.Location
}

func NewClient(cfg config.SchedulerConfig, loc *time.Location) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
		loc:    loc,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleFollowUp queues the reminder for 08:00 agency time on date.
// Scheduling the same lead and date again is a no-op.
func (c *Client) ScheduleFollowUp(ctx context.Context, leadID uuid.UUID, date time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadFollowUpTask(LeadFollowUpPayload{
		LeadID: leadID.String(),
		Date:   date.Format(time.DateOnly),
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(FollowUpRunAt(date, c.loc)),
		asynq.Queue(c.queue),
		asynq.TaskID(FollowUpTaskID(leadID, date)),
		asynq.Retention(taskRetention),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// FollowUpRunAt is 08:00 in loc on the civil date of date.
func FollowUpRunAt(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, followUpHour, 0, 0, 0, loc)
}

// FollowUpTaskID identifies the reminder of one lead for one date.
func FollowUpTaskID(leadID uuid.UUID, date time.Time) string {
	return "followup:" + leadID.String() + ":" + date.Format(time.DateOnly)
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
