package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrLotNotFound indicates that a tax lot with the given ID does not exist
	// for the requesting user. Foreign lot IDs are indistinguishable from
	// unknown ones on purpose.
	ErrLotNotFound = errors.New("tax lot not found")

	// ErrTaxEventNotFound indicates that a tax event with the given ID does not exist.
	ErrTaxEventNotFound = errors.New("tax event not found")

	// ErrSummaryNotFound indicates no capital gains summary exists for the
	// requested user and tax year.
	ErrSummaryNotFound = errors.New("capital gains summary not found")

	// ErrPriceNotFound indicates no stored price exists for a symbol.
	ErrPriceNotFound = errors.New("symbol price not found")

	// ErrSettingNotFound indicates an application setting has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidQuantity indicates a non-positive quantity on lot creation or disposition.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInsufficientQuantity indicates that a disposition cannot be completed
	// because the requested quantity exceeds the lot's open quantity.
	ErrInsufficientQuantity = errors.New("insufficient open quantity for disposition")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTaxYear indicates a tax year outside the supported range.
	ErrInvalidTaxYear = errors.New("invalid tax year")

	// ErrInvalidEventType indicates an unknown tax event type.
	ErrInvalidEventType = errors.New("invalid tax event type")

	// ErrDispositionBeforeAcquisition indicates a disposition dated before the
	// lot's acquisition date.
	ErrDispositionBeforeAcquisition = errors.New("disposition date precedes acquisition date")
)

// Concurrency errors.
var (
	// ErrVersionConflict indicates a lot was modified by a concurrent writer
	// between read and check-and-set update.
	ErrVersionConflict = errors.New("lot version conflict")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrMalformedMetadata indicates a lot's stored metadata blob could not be
	// parsed. Surfaced explicitly rather than silently dropped.
	ErrMalformedMetadata = errors.New("malformed lot metadata")

	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a closed lot with no disposition date).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrieveLots        = errors.New("failed to retrieve tax lots")
	ErrFailedToRetrieveLot         = errors.New("failed to retrieve tax lot")
	ErrFailedToDisposeLot          = errors.New("failed to dispose tax lot")
	ErrFailedToCreateLot           = errors.New("failed to create tax lot")
	ErrFailedToRetrieveSummaries   = errors.New("failed to retrieve capital gains summaries")
	ErrFailedToRecomputeSummary    = errors.New("failed to recompute capital gains summary")
	ErrFailedToRetrieveEvents      = errors.New("failed to retrieve tax events")
	ErrFailedToRecordEvent         = errors.New("failed to record tax event")
	ErrFailedToBuildReport         = errors.New("failed to build tax report")
	ErrFailedToFindOpportunities   = errors.New("failed to find harvesting opportunities")
	ErrFailedToRetrievePreferences = errors.New("failed to retrieve tax preferences")
	ErrFailedToUpdatePreferences   = errors.New("failed to update tax preferences")
	ErrFailedToUpdatePrices        = errors.New("failed to update symbol prices")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
)
