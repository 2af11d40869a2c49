package service

// ValidationError rejects input the ledger would otherwise accept but the API does not
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Message
}
