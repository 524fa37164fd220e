package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler turns a query's last evaluated key into an opaque page
// token bound to one workspace, and back.
type TokenMarshaler interface {
	Marshal(workspaceId string, lastKey map[string]types.AttributeValue) ([]byte, error)

	Unmarshal(workspaceId string, token []byte) (map[string]types.AttributeValue, error)
}
