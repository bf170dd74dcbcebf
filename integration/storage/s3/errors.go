package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"qgate/core/storage"
)

// ErrInvalidConfig is returned when bucket or region is missing, or
// the AWS configuration cannot be assembled.
var ErrInvalidConfig = errors.New("invalid s3 configuration")

// classifyError maps S3 failures onto the storage sentinels so callers
// can distinguish transient outages from refusals without importing
// AWS types.
func classifyError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", storage.ErrUnavailable, operation, err)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %s: bucket does not exist", storage.ErrUnavailable, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s", storage.ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s: %s", storage.ErrUnavailable, operation, apiErr.ErrorCode())
		case "NoSuchBucket":
			return fmt.Errorf("%w: %s: bucket does not exist", storage.ErrUnavailable, operation)
		}
		return fmt.Errorf("%s failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
