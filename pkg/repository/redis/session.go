package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/redis/go-redis/v9"
)

// Hash field layout of a session profile
const (
	fieldModulePrefix = "module:" // JSON encoded model.ModuleEntry
	fieldTimePrefix   = "ts:"     // zero padded createdAt in unix nanos
	fieldRunPrefix    = "run:"    // run ID of the stored entry
	fieldLastStep     = "lastStep"
	fieldUpdatedAt    = "updatedAt"
)

// putModuleScript writes the module entry only if (ts, run) is not older than
// the stored pair. Padded timestamps compare correctly as strings.
//
// KEYS[1] profile hash
// ARGV[1] module, ARGV[2] ts, ARGV[3] run, ARGV[4] entry JSON, ARGV[5] updatedAt
var putModuleScript = redis.NewScript(`
local ts = redis.call('HGET', KEYS[1], 'ts:' .. ARGV[1])
if ts then
  if ARGV[2] < ts then
    return 0
  end
  local run = redis.call('HGET', KEYS[1], 'run:' .. ARGV[1]) or ''
  if ARGV[2] == ts and ARGV[3] < run then
    return 0
  end
end
redis.call('HSET', KEYS[1],
  'module:' .. ARGV[1], ARGV[4],
  'ts:' .. ARGV[1], ARGV[2],
  'run:' .. ARGV[1], ARGV[3],
  'updatedAt', ARGV[5])
return 1
`)

type sessionRepository struct {
	client    *redis.Client
	keyPrefix string
}

func newSessionRepository(client *redis.Client) *sessionRepository {
	return &sessionRepository{
		client: client,
	}
}

func (r *sessionRepository) key(userID string) string {
	return r.keyPrefix + "session:" + userID
}

// orderTimestamp encodes t for string comparison. Summary.Validate keeps
// createdAt between the epoch and the last UnixNano instant; anything earlier
// encodes as zero.
func orderTimestamp(t time.Time) string {
	if t.Before(time.Unix(0, 0)) {
		return fmt.Sprintf("%020d", 0)
	}
	return fmt.Sprintf("%020d", t.UnixNano())
}

func (r *sessionRepository) Get(ctx context.Context, userID string) (*model.SessionProfile, error) {
	fields, err := r.client.HGetAll(ctx, r.key(userID)).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session profile", goerr.V("userID", userID))
	}

	profile := model.NewSessionProfile(userID)
	for field, value := range fields {
		switch {
		case strings.HasPrefix(field, fieldModulePrefix):
			var entry model.ModuleEntry
			if err := json.Unmarshal([]byte(value), &entry); err != nil {
				return nil, goerr.Wrap(err, "failed to unmarshal session module",
					goerr.V("userID", userID),
					goerr.V("field", field))
			}
			profile.Modules[types.ModuleName(strings.TrimPrefix(field, fieldModulePrefix))] = &entry

		case field == fieldLastStep:
			step, err := strconv.Atoi(value)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid lastStep value", goerr.V("userID", userID), goerr.V("value", value))
			}
			profile.LastStep = step

		case field == fieldUpdatedAt:
			updatedAt, err := time.Parse(time.RFC3339Nano, value)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid updatedAt value", goerr.V("userID", userID), goerr.V("value", value))
			}
			profile.UpdatedAt = updatedAt
		}
	}

	return profile, nil
}

func (r *sessionRepository) PutModuleIfNewer(ctx context.Context, userID string, module types.ModuleName, entry *model.ModuleEntry) (bool, error) {
	if entry == nil || entry.Summary == nil {
		return false, goerr.New("module entry has no summary", goerr.V("module", module))
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return false, goerr.Wrap(err, "failed to marshal session module", goerr.V("module", module))
	}

	applied, err := putModuleScript.Run(ctx, r.client, []string{r.key(userID)},
		string(module),
		orderTimestamp(entry.Summary.Meta.CreatedAt),
		entry.Summary.Meta.RunID,
		string(raw),
		time.Now().UTC().Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return false, goerr.Wrap(err, "failed to put session module",
			goerr.V("userID", userID),
			goerr.V("module", module))
	}

	return applied == 1, nil
}

func (r *sessionRepository) SaveProgress(ctx context.Context, userID string, lastStep int) error {
	err := r.client.HSet(ctx, r.key(userID),
		fieldLastStep, lastStep,
		fieldUpdatedAt, time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return goerr.Wrap(err, "failed to save progress",
			goerr.V("userID", userID),
			goerr.V("lastStep", lastStep))
	}
	return nil
}
