package domain

import "errors"

var (
	// ErrNetworkNotFound means the requested network is not in the network list.
	ErrNetworkNotFound = errors.New("network not found")

	// ErrAccountNotFound means the requested account is not known to the wallet.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoNetworkSelected means the wallet has no selected network yet.
	ErrNoNetworkSelected = errors.New("no network selected")

	// ErrUpstreamSourceFailure means an error occurred while fetching data from the wallet backend.
	ErrUpstreamSourceFailure = errors.New("upstream source failure")

	// ErrStaleResult means a completed fetch belongs to an older network selection.
	ErrStaleResult = errors.New("stale fetch result")
)
