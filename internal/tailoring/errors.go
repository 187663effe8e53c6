package tailoring

import "errors"

var (
	// ErrInvalidInput indicates a missing cv or job reference.
	ErrInvalidInput = errors.New("invalid input")

	// ErrJobNotFound indicates the target job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrCVNotFound indicates the base CV does not exist or belongs to another user.
	ErrCVNotFound = errors.New("base cv not found")

	// ErrBaseUnavailable indicates the base CV bytes could not be fetched.
	ErrBaseUnavailable = errors.New("base document inaccessible")

	// ErrStorageUnavailable indicates the generated document could not be stored.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound indicates no tailored CV matches the lookup for the user.
	ErrNotFound = errors.New("tailored cv not found")

	// ErrDuplicate indicates an outcome already exists for the (user, cv, job)
	// triple. Happens only when two generations race past the reuse check.
	ErrDuplicate = errors.New("tailored cv already exists")

	// ErrTimeout indicates the pipeline exceeded its overall deadline.
	ErrTimeout = errors.New("tailoring deadline exceeded")
)
