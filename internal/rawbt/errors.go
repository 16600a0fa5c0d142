package rawbt

import "fmt"

// ConnectError means the WebSocket endpoint could not be opened. Its message
// is shown to the user as is; the dial failure stays reachable through Unwrap.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return "Failed to connect to RawBT WS API"
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ProtocolError is a terminal error message or an unrecognised message from RawBT
type ProtocolError struct {
	Message string
	Raw     string
	Unknown bool
}

func (e *ProtocolError) Error() string {
	if e.Unknown {
		return "Unknown RawBT response: " + e.Raw
	}
	return "RawBT error: " + e.Message
}

// TransportError means the connection broke before a terminal message arrived
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("RawBT connection lost: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
