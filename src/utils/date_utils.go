package utils

// DefaultDateFormat is the date layout of the account export ("DD-MM-YYYY").
const DefaultDateFormat = "02-01-2006"
