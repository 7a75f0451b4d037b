package constants

// Static route constants
const (
	PublicRoute   = "/"
	APIRoute      = "/api"
	APIV1Route    = "/v1"
	InternalRoute = "/internal"
	AdminRoute    = "/admin"
)
