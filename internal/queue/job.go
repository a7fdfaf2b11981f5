package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Priority  int             `json:"priority"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	NotBefore int64           `json:"not_before,omitempty"`
	CreatedAt int64           `json:"created_at"`
	ExpireAt  int64           `json:"expired_at"`
}

// Job types carried by the engine.
const (
	JobRecomputeStats     = "recompute_stats"
	JobMaterializeNotifs  = "materialize_notifications"
	JobRetractBroadcast   = "retract_broadcast"
	JobSweepExpiredNotifs = "sweep_expired_notifications"
)

func NewJob(jobType string, payload any, priority int) Job {
	now := time.Now()
	return Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Payload:   MustMarshal(payload),
		Priority:  priority,
		MaxRetry:  3,
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(10 * time.Minute).Unix(),
	}
}

func MustMarshal(payload any) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return b
}
