package account

// Account represents a registered user. The identifier is assigned by the
// store on insert and is never supplied by a caller.
type Account struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
