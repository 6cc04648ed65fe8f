package domain

import (
	"context"
	"log/slog"
)

// StateResolver derives a two-letter state code from coordinates.
type StateResolver interface {
	ResolveState(ctx context.Context, lat, lon float64) (string, error)
}

// ResolveMissingStates fills in State for records whose place text yielded
// none, using the resolver. Records that already have a state are left as
// they are. Resolver failures are logged and the record stays unattributed;
// a cancelled context stops further lookups. Returns the updated copy and
// the number of records resolved.
func ResolveMissingStates(ctx context.Context, records []EventRecord, resolver StateResolver, logger *slog.Logger) ([]EventRecord, int) {
	if resolver == nil {
		return records, 0
	}

	out := make([]EventRecord, len(records))
	copy(out, records)

	resolved := 0
	for i := range out {
		if out[i].State != "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		state, err := resolver.ResolveState(ctx, out[i].Latitude, out[i].Longitude)
		if err != nil {
			logger.Warn("state resolution failed",
				"place", out[i].Place,
				"lat", out[i].Latitude,
				"lon", out[i].Longitude,
				"error", err,
			)
			continue
		}
		if state != "" {
			out[i].State = state
			resolved++
		}
	}
	return out, resolved
}
