// Package storage persists evaluation results keyed by session id. The
// engine itself never persists; the caller hands completed results to a
// Store.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/seclens/seclens/pkg/types"
)

// ErrNotFound is returned when no result exists for a session id
var ErrNotFound = errors.New("evaluation result not found")

// Store persists and retrieves evaluation results as opaque documents
type Store interface {
	SaveResult(ctx context.Context, result *types.EvaluationResult) error
	LoadResult(ctx context.Context, sessionID string) (*types.EvaluationResult, error)
	ListResults(ctx context.Context) ([]ResultInfo, error)
	DeleteResult(ctx context.Context, sessionID string) error
}

// ResultInfo provides metadata about a stored evaluation result
type ResultInfo struct {
	SessionID        string    `json:"session_id"`
	Timestamp        time.Time `json:"timestamp"`
	SnapshotID       string    `json:"snapshot_id"`
	TotalRules       int       `json:"total_rules"`
	FailedRules      int       `json:"failed_rules"`
	OverallRiskScore int       `json:"overall_risk_score"`
}

// Config holds storage configuration
type Config struct {
	Backend string   `mapstructure:"backend"` // "local" or "s3"
	BaseDir string   `mapstructure:"base_dir"`
	S3      S3Config `mapstructure:"s3"`
}

// info condenses a result for listings
func info(result *types.EvaluationResult) ResultInfo {
	return ResultInfo{
		SessionID:        result.SessionID,
		Timestamp:        result.Timestamp,
		SnapshotID:       result.Snapshot.ID,
		TotalRules:       result.TotalRules,
		FailedRules:      result.FailedRules,
		OverallRiskScore: result.OverallRiskScore,
	}
}
