package errors

import "sort"

// Registered error codes.
const (
	CodeHookOutsideRender = "E001"
	CodeHookOrderChanged  = "E002"
	CodeHookSlotMismatch  = "E003"
	CodeOwnerDisposed     = "E005"

	CodeConfigRead    = "E100"
	CodeConfigParse   = "E101"
	CodeConfigInvalid = "E102"
	CodeConfigWrite   = "E103"

	CodeCommandFailed = "E120"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E099)
	// ============================================

	CodeHookOutsideRender: {
		Category: CategoryRuntime,
		Message:  "Hook called outside render",
		Detail:   "Hooks such as UseRef and UseMergedRefs keep their state in the owner's hook slots and must be called while the owner is rendering.",
	},
	CodeHookOrderChanged: {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "Hooks must be called in the same order on every render. Do not call hooks inside conditions or loops.",
	},
	CodeHookSlotMismatch: {
		Category: CategoryRuntime,
		Message:  "Hook slot holds a different type",
		Detail:   "The value stored in this hook slot was created by a different hook. The hook call order probably changed between renders.",
	},
	CodeOwnerDisposed: {
		Category: CategoryRuntime,
		Message:  "Owner disposed",
		Detail:   "The component owner has been disposed and cannot render again.",
	},

	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Invalid config JSON",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
	CodeConfigWrite: {
		Category: CategoryConfig,
		Message:  "Cannot write config file",
	},

	// ============================================
	// CLI Errors (E120-E139)
	// ============================================

	CodeCommandFailed: {
		Category: CategoryCLI,
		Message:  "Command failed",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
