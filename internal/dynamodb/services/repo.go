package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"philcali.me/barmanager/internal/data"
	"philcali.me/barmanager/internal/dynamodb/token"
	"philcali.me/barmanager/internal/exceptions"
)

// RepositoryDynamoDBService stores one resource type of every workspace in a
// single table. The hooks translate between the resource's input and stored
// shapes.
type RepositoryDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB       *dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Name           string
	Shim           func(pk string, sk string) T
	OnCreate       func(I, time.Time, string, string) T
	OnUpdate       func(I, expression.UpdateBuilder) expression.UpdateBuilder
	// NewId generates sort keys; random UUIDs when nil.
	NewId          func() string
}

func PrimaryKey(workspaceId string, name string) string {
	return fmt.Sprintf("%s:%s", workspaceId, name)
}

func _getKey(pks string, sks string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(pks)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(sks)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (rs *RepositoryDynamoDBService[T, I]) resource() string {
	return strings.ToLower(rs.Name)
}

func (rs *RepositoryDynamoDBService[T, I]) List(ctx context.Context, workspaceId string, params data.QueryParams) (data.QueryResults[T], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(PrimaryKey(workspaceId, rs.Name)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	startKey, err := rs.TokenMarshaler.Unmarshal(workspaceId, params.NextToken)
	if err != nil {
		return data.QueryResults[T]{}, exceptions.InvalidInput("nextToken is not valid for this workspace")
	}
	output, err := rs.DynamoDB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return data.QueryResults[T]{}, fmt.Errorf("query %s: %w", rs.resource(), err)
	}
	items := make([]T, 0, len(output.Items))
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[T]{}, err
	}
	nextToken, err := rs.TokenMarshaler.Marshal(workspaceId, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return data.QueryResults[T]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

func (rs *RepositoryDynamoDBService[T, I]) newId() string {
	if rs.NewId != nil {
		return rs.NewId()
	}
	return uuid.NewString()
}

func (rs *RepositoryDynamoDBService[T, I]) Create(ctx context.Context, workspaceId string, input I) (T, error) {
	sk := rs.newId()
	shim := rs.OnCreate(input, time.Now(), PrimaryKey(workspaceId, rs.Name), sk)
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return shim, exceptions.Conflict(rs.resource(), sk)
		}
		return shim, fmt.Errorf("put %s: %w", rs.resource(), err)
	}
	return shim, nil
}

func (rs *RepositoryDynamoDBService[T, I]) Update(ctx context.Context, workspaceId string, itemId string, input I) (T, error) {
	pk := PrimaryKey(workspaceId, rs.Name)
	shim := rs.Shim(pk, itemId)
	key, err := _getKey(pk, itemId)
	if err != nil {
		return shim, err
	}
	update := expression.Set(expression.Name("updateTime"), expression.Value(time.Now()))
	if rs.OnUpdate != nil {
		update = rs.OnUpdate(input, update)
	}
	condition := expression.Name("PK").AttributeExists().And(expression.Name("SK").AttributeExists())
	expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return shim, exceptions.NotFound(rs.resource(), itemId)
		}
		return shim, fmt.Errorf("update %s: %w", rs.resource(), err)
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Get(ctx context.Context, workspaceId string, itemId string) (T, error) {
	pk := PrimaryKey(workspaceId, rs.Name)
	shim := rs.Shim(pk, itemId)
	key, err := _getKey(pk, itemId)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(rs.TableName),
		Key:       key,
	})
	if err != nil {
		return shim, fmt.Errorf("get %s: %w", rs.resource(), err)
	}
	if response.Item == nil {
		return shim, exceptions.NotFound(rs.resource(), itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Delete(ctx context.Context, workspaceId string, itemId string) error {
	key, err := _getKey(PrimaryKey(workspaceId, rs.Name), itemId)
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(rs.TableName),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", rs.resource(), err)
	}
	return nil
}

// SetOrRemove writes an optional string attribute: nil leaves it untouched,
// an empty string removes it.
func SetOrRemove(update expression.UpdateBuilder, name string, value *string) expression.UpdateBuilder {
	if value == nil {
		return update
	}
	if *value == "" {
		return update.Remove(expression.Name(name))
	}
	return update.Set(expression.Name(name), expression.Value(*value))
}
