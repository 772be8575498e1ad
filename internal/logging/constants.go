package logging

// Standardized field names, so that log lines from the PDF front end, the XML
// front end and the calculator can be filtered the same way.
const (
	FieldFile        = "file_path"
	FieldParser      = "parser"
	FieldMediaType   = "media_type"
	FieldField       = "field"
	FieldPattern     = "pattern"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldTextLength  = "text_length"
	FieldPageCount   = "page_count"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldSimulation  = "simulation_id"
	FieldInstallment = "installments"
)
