package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldMethod    = "method"
	FieldDuration  = "duration_ms"
	FieldCode      = "code"
	FieldEntryID   = "entry_id"
	FieldCategory  = "category"
	FieldCount     = "count"
	FieldNetWorth  = "net_worth"
	FieldRate      = "growth_rate"
	FieldBackend   = "backend"
	FieldAddress   = "address"
	FieldPath      = "path"
	FieldSchedule  = "schedule"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentGRPC      = "grpc"
	ComponentPortfolio = "portfolio"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentPublisher = "publisher"
	ComponentReminder  = "reminder"
	ComponentSeeder    = "seeder"
	ComponentCLI       = "cli"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpMerge    = "merge"
	OpImport   = "import"
	OpExport   = "export"
	OpSetRate  = "set_growth_rate"
	OpPublish  = "publish"
	OpSeed     = "seed"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
