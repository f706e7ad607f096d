package models

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
	PermissionStoreFile  = 0600
)

// Bank hints recognised by the statement parser and card identity detection.
const (
	BankUnknown = "unknown"
	BankICICI   = "icici"
	BankHDFC    = "hdfc"
	BankSBI     = "sbi"
	BankAxis    = "axis"
	BankKotak   = "kotak"
)

// UnknownLast4 is used when no card number can be found in a filename.
const UnknownLast4 = "XXXX"
