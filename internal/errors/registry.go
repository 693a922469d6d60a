package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "Malformed message",
		Detail:   "The frame is not a JSON object with a string \"type\" field.",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Unknown message type",
		Detail:   "The message type is not one the server accepts.",
	},
	"E062": {
		Category: CategoryProtocol,
		Message:  "Missing grid id",
		Detail:   "Every grid message must name the grid it refers to.",
	},
	"E063": {
		Category: CategoryProtocol,
		Message:  "Unknown grid",
		Detail:   "The grid was never registered on this connection, or was already unregistered.",
	},
	"E064": {
		Category: CategoryProtocol,
		Message:  "Invalid position",
		Detail:   "Positions must have a non-negative index and offset.",
	},
	"E065": {
		Category: CategoryProtocol,
		Message:  "Grid already registered",
		Detail:   "A grid id may be registered only once per connection.",
	},
	"E066": {
		Category: CategoryProtocol,
		Message:  "Too many grids",
		Detail:   "The connection registered more grids than the server allows.",
	},

	// ============================================
	// Server Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryServer,
		Message:  "Listen failed",
		Detail:   "The HTTP server could not bind its address.",
	},
	"E081": {
		Category: CategoryServer,
		Message:  "WebSocket upgrade failed",
		Detail:   "The request could not be upgraded to a WebSocket connection.",
	},
	"E082": {
		Category: CategoryServer,
		Message:  "Shutdown timed out",
		Detail:   "Open connections did not close before the shutdown timeout.",
	},
	"E083": {
		Category: CategoryServer,
		Message:  "Invalid group name",
		Detail:   "Group names are 1-64 characters of letters, digits, '-', '_' or '.'.",
	},

	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "The log level must be debug, info, warn or error.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid effect budget",
		Detail:   "sync.max_effect_runs must be zero (unbounded) or positive.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid server settings",
		Detail:   "The server address must be set and buffer sizes and timeouts must be positive.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid demo layout",
		Detail:   "The demo needs at least one page, one column, a non-negative item count and a positive row height.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Terminal demo failed",
		Detail:   "The interactive demo exited with an error.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Invalid simulation",
		Detail:   "The simulation needs at least two grids and one step.",
	},
}

// Codes returns all registered error codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
