package apperrors

import "errors"

// Reference data errors concern the city tables read by the calculation engine.
var (
	// ErrReferenceDataEmpty indicates that a reference table reload produced no rows.
	ErrReferenceDataEmpty = errors.New("reference data is empty")

	// ErrInvalidReferenceData indicates that a reference table contains an unusable row
	// or lacks the default city.
	ErrInvalidReferenceData = errors.New("invalid reference data")

	// ErrCityNotFound indicates that a city lookup matched no profile.
	ErrCityNotFound = errors.New("city not found")
)

// Market data errors.
var (
	// ErrMarketDataUnavailable indicates that a market data provider could not produce
	// an estimate. Simulations fall back to the local tables when this happens.
	ErrMarketDataUnavailable = errors.New("market data unavailable")

	ErrInvalidMarketQuery = errors.New("invalid market data query")
)

// Report errors.
var (
	// ErrInvalidReportToken indicates a report token that is malformed, tampered with or expired.
	ErrInvalidReportToken = errors.New("invalid or expired report token")

	// ErrFailedToRenderReport indicates that PDF generation failed.
	ErrFailedToRenderReport = errors.New("failed to render report")
)

// Lead errors.
var (
	// ErrLeadPublishFailed indicates that a validated lead could not be handed off.
	ErrLeadPublishFailed = errors.New("failed to publish lead")
)

// Request errors.
var (
	// ErrInvalidRequestBody indicates a body that is not valid JSON or does not match
	// the endpoint's JSON schema.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrFailedToGetVersionInfo indicates that version information could not be gathered.
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
