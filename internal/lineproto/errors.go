package lineproto

import "errors"

// ErrCapacityExceeded indicates a line did not fit in the batch. The line is
// dropped whole and the batch is unchanged.
var ErrCapacityExceeded = errors.New("lineproto: batch capacity exceeded")
