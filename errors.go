package flowspace

import "errors"

// ErrServiceKindMismatch is returned by IpService.Port/ICMPType when the
// service does not carry ancillary data of the requested kind.
var ErrServiceKindMismatch = errors.New("flowspace: service ancillary kind mismatch")
