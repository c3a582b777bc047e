// Package errors provides coded errors for the ship roller.
//
// Errors carry a Code, a user-facing Message, an optional Reason and metadata.
// Code drives transport mapping (gRPC status codes); Reason distinguishes
// sentinels that share a code.
//
// Creating errors:
//
//	err := errors.NotFound("override layer not found")
//	err := errors.InvalidArgumentf("count must be positive, got %d", n)
//
// Sentinels:
//
//	var ErrNoDataLoaded = errors.FailedPrecondition("no vessel data loaded").WithReason("no_data_loaded")
//
//	if errors.Is(err, ErrNoDataLoaded) {
//	    // only matches errors with the same code and reason
//	}
//
// Wrapping keeps the code, reason and metadata of the wrapped error:
//
//	if err := repo.Load(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load scraped overrides")
//	}
//
// Validation of configs goes through the ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Sampler == nil {
//	    vb.RequiredField("Sampler")
//	}
//	return vb.Build()
package errors
