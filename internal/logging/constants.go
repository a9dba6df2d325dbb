package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldRecordID   = "record_id"
	FieldVendor     = "vendor"
	FieldCategory   = "category"
	FieldField      = "field"
	FieldAlgorithm  = "algorithm"
	FieldStrategy   = "strategy"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
