package loggers

const (
	FieldApp       = "app"
	FieldComponent = "component"

	FieldRunID    = "run_id"
	FieldAnalysis = "analysis"
	FieldTarget   = "target"
	FieldLine     = "line"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
)
