package protocol

const (
	// MaxMessageSize bounds a single inbound frame in bytes.
	MaxMessageSize = 4096

	// MaxGridIDLength bounds grid ids.
	MaxGridIDLength = 128
)
