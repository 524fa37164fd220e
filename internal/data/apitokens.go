package data

import "time"

// Scope grants access to the routes below "/workspaces/:workspaceId/<resource>".
// The plain resource name allows every method, the ".read" form GET only.
type Scope string

const (
	COCKTAILS_READ      Scope = "cocktails.read"
	COCKTAILS_WRITE     Scope = "cocktails"
	INGREDIENTS_READ    Scope = "ingredients.read"
	INGREDIENTS_WRITE   Scope = "ingredients"
	GLASSES_READ        Scope = "glasses.read"
	GLASSES_WRITE       Scope = "glasses"
	GARNISHES_READ      Scope = "garnishes.read"
	GARNISHES_WRITE     Scope = "garnishes"
	CARDS_READ          Scope = "cards.read"
	CARDS_WRITE         Scope = "cards"
	AUDIT_READ          Scope = "audits.read"
	AUDIT_WRITE         Scope = "audits"
	SUBSCRIPTIONS_READ  Scope = "subscriptions.read"
	SUBSCRIPTIONS_WRITE Scope = "subscriptions"
	TOKENS_READ         Scope = "tokens.read"
	TOKENS_WRITE        Scope = "tokens"
	PROVIDER_READ       Scope = "providers.read"
	PROVIDER_WRITE      Scope = "providers"
)

// AllScopes lists every write scope, which is what an interactive user gets.
func AllScopes() []Scope {
	return []Scope{
		COCKTAILS_WRITE,
		INGREDIENTS_WRITE,
		GLASSES_WRITE,
		GARNISHES_WRITE,
		CARDS_WRITE,
		AUDIT_WRITE,
		SUBSCRIPTIONS_WRITE,
		TOKENS_WRITE,
		PROVIDER_WRITE,
	}
}

func (s Scope) Valid() bool {
	for _, scope := range AllScopes() {
		if s == scope || string(s) == string(scope)+".read" {
			return true
		}
	}
	return false
}

type ApiTokenDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	AccountId  string    `dynamodbav:"accountId"`
	Name       string    `dynamodbav:"name"`
	Scopes     []Scope   `dynamodbav:"scopes"`
	ExpiresIn  *int      `dynamodbav:"expiresIn"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

// Expired reports whether the token's expiry, in epoch milliseconds, has
// passed. Tokens without one never expire.
func (t ApiTokenDTO) Expired(now time.Time) bool {
	return t.ExpiresIn != nil && int64(*t.ExpiresIn) <= now.UnixMilli()
}

type ApiTokenInputDTO struct {
	Name      *string  `dynamodbav:"name"`
	Scopes    *[]Scope `dynamodbav:"scopes"`
	AccountId *string  `dynamodbav:"accountId"`
	ExpiresIn *int     `dynamodbav:"expiresIn"`
}

type ApiTokenRepository interface {
	Repository[ApiTokenDTO, ApiTokenInputDTO]
}
