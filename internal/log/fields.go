package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldLedger    = "ledger"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldRank      = "rank"
	FieldPosition  = "position"
	FieldRows      = "rows"
	FieldChart     = "chart"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentSession = "session"
	ComponentStore   = "store"
	ComponentBackend = "backend"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpAppend       = "append"
	OpDeleteRow    = "delete_row"
	OpCreateLedger = "create_ledger"
	OpDeleteLedger = "delete_ledger"
	OpView         = "view"
	OpChart        = "chart"
	OpStartup      = "startup"
	OpShutdown     = "shutdown"
)
