package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContextKeyOperatorID   = "operator_id"
	ContextKeyOperatorRole = "operator_role"
	ContextKeySessionToken = "session_token"
	ContextKeyRequestID    = "request_id"

	TableMembers      = "members"
	TablePackages     = "packages"
	TableRecharges    = "recharges"
	TableConsumptions = "consumptions"
	TableOperators    = "operators"

	// DefaultValidityDays applies when neither the request nor the pack sets a validity.
	DefaultValidityDays = 365

	// ReconcileBatchSize is the page size used when reconciling every recharge.
	ReconcileBatchSize = 200

	ErrMsgInternalServerError = "Internal server error occurred"
)
