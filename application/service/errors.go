package service

import (
	"errors"
	"fmt"

	"github.com/investmatch/investmatch/domain/errs"
)

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("investmatch: client is closed")

// ErrPaymentsNotConfigured is returned when the payment gateway or its
// signing secret is not set.
var ErrPaymentsNotConfigured = fmt.Errorf("%w: payments not configured", errs.ErrUnavailable)
