package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBQueryError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError

	// Reference table errors
	TableLoadError
	InvalidProfileError
	ImportError

	// Model errors
	ModelReadError
	ModelFormatError
	PredictionError

	// Recommendation errors
	MissingInputError
	RegionNotFoundError
	ModelUnavailableError
	MalformedSampleError
	InvalidRequestError
)

// Of returns the code of the first *gn.Error found in the chain of err,
// or UnknownError if there is none.
func Of(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}
