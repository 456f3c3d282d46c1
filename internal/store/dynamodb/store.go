// Package dynamodb implements the item store on a DynamoDB table with
// conditional writes. Existence preconditions use condition expressions, so
// racing writers are serialized by the table, not by this process.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"items-api/internal/models"
	"items-api/internal/store"
)

// API is the slice of the DynamoDB client this store uses. Narrow on purpose
// so tests can substitute a fake.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store is a DynamoDB-backed ItemStore over a single table keyed by "id".
type Store struct {
	client API
	table  string
}

// New creates a store over an existing client.
func New(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// Connect resolves AWS configuration from the environment and returns a store
// for the given table. endpoint overrides the service endpoint for local
// emulators; leave it empty for real AWS.
func Connect(ctx context.Context, region, endpoint, table string) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return New(client, table), nil
}

// PutIfAbsent writes the item guarded by attribute_not_exists(id).
func (s *Store) PutIfAbsent(ctx context.Context, item models.Item) error {
	id := item.ID()

	av, err := attributevalue.MarshalMap(map[string]interface{}(item))
	if err != nil {
		return store.NewStoreError("put", id, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return store.NewStoreError("put", id, store.ErrAlreadyExists)
		}
		return store.NewStoreError("put", id, err)
	}
	return nil
}

// GetByKey performs a point lookup by id.
func (s *Store) GetByKey(ctx context.Context, id string) (models.Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(id),
	})
	if err != nil {
		return nil, store.NewStoreError("get", id, err)
	}
	if len(out.Item) == 0 {
		return nil, store.NewStoreError("get", id, store.ErrNotFound)
	}

	var item models.Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, store.NewStoreError("get", id, err)
	}
	return item, nil
}

// UpdateIfPresent sets exactly the given fields, guarded by
// attribute_exists(id). Field names go through expression attribute names so
// reserved words like "modified" never collide with the expression grammar.
func (s *Store) UpdateIfPresent(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return store.NewStoreError("update", id, errors.New("no fields to update"))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(fields))
	values := make(map[string]ddbtypes.AttributeValue, len(fields))
	assignments := make([]string, 0, len(fields))

	for i, k := range keys {
		nameRef := fmt.Sprintf("#f%d", i)
		valueRef := fmt.Sprintf(":v%d", i)

		av, err := attributevalue.Marshal(fields[k])
		if err != nil {
			return store.NewStoreError("update", id, err)
		}

		names[nameRef] = k
		values[valueRef] = av
		assignments = append(assignments, nameRef+" = "+valueRef)
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       itemKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(assignments, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return store.NewStoreError("update", id, store.ErrNotFound)
		}
		return store.NewStoreError("update", id, err)
	}
	return nil
}

// DeleteByKey deletes unconditionally; DynamoDB treats an absent key as a
// successful no-op.
func (s *Store) DeleteByKey(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(id),
	})
	if err != nil {
		return store.NewStoreError("delete", id, err)
	}
	return nil
}

// Close implements ItemStore; the SDK client holds no resources to release.
func (s *Store) Close() error {
	return nil
}

func itemKey(id string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		models.FieldID: &ddbtypes.AttributeValueMemberS{Value: id},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *ddbtypes.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
