package retries

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	seededRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
	seededRandMu sync.Mutex
)

// ManageRetries calls fn until fn reports that a retry isn't warranted, until
// maxAttempts calls have been made, or until ctx is canceled. Between
// attempts, it waits an exponentially increasing, jittered interval that never
// exceeds maxBackoff. The process argument describes what fn does and is used
// in log messages and errors.
func ManageRetries(
	ctx context.Context,
	process string,
	maxAttempts uint8,
	maxBackoff time.Duration,
	fn func() (bool, error),
) error {
	var failedAttempts uint8
	for {
		retry, err := fn()
		if !retry {
			return err
		}
		failedAttempts++
		if failedAttempts >= maxAttempts {
			return errors.Wrapf(
				err,
				"failed %d attempt(s) to %s",
				failedAttempts,
				process,
			)
		}
		delay := jitteredExpBackoff(failedAttempts, maxBackoff)
		glog.Warningf(
			"failed %d attempt(s) to %s; will retry in %s: %s",
			failedAttempts,
			process,
			delay,
			err,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func jitteredExpBackoff(
	failureCount uint8,
	maxDelay time.Duration,
) time.Duration {
	base := math.Pow(2, float64(failureCount))
	capped := math.Min(base, maxDelay.Seconds())
	seededRandMu.Lock()
	jitter := seededRand.Float64()
	seededRandMu.Unlock()
	jittered := (1 + jitter) * (capped / 2)
	return time.Duration(jittered * float64(time.Second))
}
