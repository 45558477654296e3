package impedance

import "errors"

var (
	// ErrInvalidParameter is returned for physical parameters the formulas
	// cannot handle (zero resonant frequency, Q <= 1/2, non-finite values).
	ErrInvalidParameter = errors.New("impedance: invalid parameter")

	// ErrLengthMismatch is returned when parallel input arrays differ in length.
	ErrLengthMismatch = errors.New("impedance: array length mismatch")

	// ErrGridMismatch is returned when a voltage vector or profile does not
	// match the current bin grid.
	ErrGridMismatch = errors.New("impedance: bin grid mismatch")

	// ErrUnsupportedDomain is returned when a calculator is given a source
	// that holds no data in the domain it works in.
	ErrUnsupportedDomain = errors.New("impedance: source has no data in this domain")
)
