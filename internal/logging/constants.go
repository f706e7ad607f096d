package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldStatement   = "statement"
	FieldBank        = "bank"
	FieldCard        = "card_last4"
	FieldLayout      = "layout"
	FieldMerchant    = "merchant"
	FieldPlan        = "plan"
	FieldInstallment = "installment"
	FieldSeq         = "seq"
	FieldDate        = "date"
	FieldAmount      = "amount"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldCount       = "count"
	FieldSkipped     = "skipped"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
