package domain

import "errors"

var (
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrSubscriberClosed   = errors.New("subscriber closed")
	ErrSubscriberSlow     = errors.New("subscriber send buffer full")
	ErrTooManySubscribers = errors.New("max subscribers reached")
)
