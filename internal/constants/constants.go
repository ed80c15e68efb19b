package constants

import "time"

const (
	//分頁
	DefaultPage         int = 1
	DefaultItemsPerPage int = 5
	MaxItemsPerPage     int = 20

	//購物車單次加入數量上限
	MinCartQuantity int = 1
	MaxCartQuantity int = 100

	ShippingLeadDays = 7
	DateLayout       = "2006-01-02"

	DefaultOperationTimeout = 3 * time.Second
	DefaultSessionTTL       = 24 * time.Hour
	DefaultSubjectCacheTTL  = 10 * time.Minute
)

// for api auth
type ContextKey string

const (
	IdentityKey ContextKey = "identity"
	SessionKey  ContextKey = "session_id"
)

const SessionCookieName = "bookstore_sid"

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
