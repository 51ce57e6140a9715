package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (M001-M019)
	// ============================================

	"M001": {
		Category: CategoryRender,
		Message:  "Markup syntax error",
		Detail:   "The formula is not well formed. The caret marks where the engine stopped understanding it.",
		DocURL:   "https://mathlive.dev/docs/errors/M001",
	},
	"M002": {
		Category: CategoryRender,
		Message:  "Construct not allowed",
		Detail:   "The formula uses a command that is undefined, or one that needs trust to render.",
		DocURL:   "https://mathlive.dev/docs/errors/M002",
	},
	"M003": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The engine failed without reporting where in the formula the problem is.",
		DocURL:   "https://mathlive.dev/docs/errors/M003",
	},

	// ============================================
	// Config Errors (M120-M139)
	// ============================================

	"M120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "mathlive.json or mathlive.yaml could not be parsed.",
		DocURL:   "https://mathlive.dev/docs/errors/M120",
	},
	"M121": {
		Category: CategoryConfig,
		Message:  "Unknown render option",
		Detail:   "The preset, strictness, display mode or position unit is not one mathlive knows.",
		DocURL:   "https://mathlive.dev/docs/errors/M121",
	},
	"M122": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number must be between 1 and 65535.",
		DocURL:   "https://mathlive.dev/docs/errors/M122",
	},
	"M123": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "The log level must be one of debug, info, warn or error.",
		DocURL:   "https://mathlive.dev/docs/errors/M123",
	},

	// ============================================
	// Publish Errors (M140-M159)
	// ============================================

	"M140": {
		Category: CategoryPublish,
		Message:  "Snapshot upload failed",
		Detail:   "The rendered snapshot could not be stored in the configured bucket.",
		DocURL:   "https://mathlive.dev/docs/errors/M140",
	},
	"M141": {
		Category: CategoryPublish,
		Message:  "No bucket configured",
		Detail:   "Publishing needs publish.bucket in the configuration or the --bucket flag.",
		DocURL:   "https://mathlive.dev/docs/errors/M141",
	},

	// ============================================
	// Server Errors (M160-M179)
	// ============================================

	"M160": {
		Category: CategoryServer,
		Message:  "Live preview server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   "https://mathlive.dev/docs/errors/M160",
	},

	// ============================================
	// CLI Errors (M180-M199)
	// ============================================

	"M180": {
		Category: CategoryCLI,
		Message:  "Formula rejected",
		Detail:   "At least one formula failed to render.",
		DocURL:   "https://mathlive.dev/docs/errors/M180",
	},

	"M181": {
		Category: CategoryCLI,
		Message:  "Expression rejected",
		Detail:   "The expression could not be parsed.",
		DocURL:   "https://mathlive.dev/docs/errors/M181",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
