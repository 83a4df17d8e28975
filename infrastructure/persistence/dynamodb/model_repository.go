package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"sketchddd/application/ports"
	"sketchddd/domain/core/aggregates"
	"sketchddd/domain/core/valueobjects"
	"sketchddd/infrastructure/persistence/abstractions"
	"sketchddd/infrastructure/persistence/codec"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/pkg/utils"
)

const (
	entityTypeModel = "MODEL"
	listPartition   = "MODELS"
	metadataSK      = "METADATA"
	indexName       = "GSI1"
)

// API is the subset of the DynamoDB client the repository uses
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ API = (*dynamodb.Client)(nil)
var _ ports.ModelRepository = (*ModelRepository)(nil)

// ModelRepository implements ports.ModelRepository on a single DynamoDB table.
// Each model is one item keyed MODEL#<id>/METADATA; the GSI1 index groups
// all models under one partition sorted by name for listing.
type ModelRepository struct {
	client    API
	tableName string
	codec     *codec.Codec
	logger    *zap.Logger
	now       func() time.Time
}

// NewModelRepository creates a new ModelRepository
func NewModelRepository(client API, tableName string, c *codec.Codec, logger *zap.Logger) *ModelRepository {
	return &ModelRepository{
		client:    client,
		tableName: tableName,
		codec:     c,
		logger:    logger,
		now:       time.Now,
	}
}

// modelItem represents the DynamoDB item structure for a model
type modelItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"`
	GSI1SK       string `dynamodbav:"GSI1SK"`
	EntityType   string `dynamodbav:"EntityType"`
	ModelID      string `dynamodbav:"ModelID"`
	Name         string `dynamodbav:"Name"`
	Description  string `dynamodbav:"Description"`
	Version      int    `dynamodbav:"Version"`
	Checksum     string `dynamodbav:"Checksum"`
	ContextCount int    `dynamodbav:"ContextCount"`
	Document     []byte `dynamodbav:"Document"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
}

func modelKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "MODEL#" + id},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

// Save writes the next version of model with a conditional put
func (r *ModelRepository) Save(ctx context.Context, model *aggregates.Model) error {
	record, err := abstractions.NewModelRecord(r.codec, model, r.now())
	if err != nil {
		return pkgerrors.NewStorageError("dynamodb", "save", err)
	}

	item := modelItem{
		PK:           "MODEL#" + record.ID,
		SK:           metadataSK,
		GSI1PK:       listPartition,
		GSI1SK:       fmt.Sprintf("%s#%s", record.Name, record.ID),
		EntityType:   entityTypeModel,
		ModelID:      record.ID,
		Name:         record.Name,
		Description:  record.Description,
		Version:      record.Version,
		Checksum:     record.Checksum,
		ContextCount: record.ContextCount,
		Document:     record.Document,
		CreatedAt:    utils.FormatTimestamp(record.CreatedAt),
		UpdatedAt:    utils.FormatTimestamp(record.UpdatedAt),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	var cond expression.ConditionBuilder
	if model.Version() == 0 {
		cond = expression.AttributeNotExists(expression.Name("PK"))
	} else {
		cond = expression.Name("Version").Equal(expression.Value(model.Version()))
	}
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionalCheckFailed) {
			r.logger.Debug("Model version conflict",
				zap.String("modelID", record.ID),
				zap.Int("expectedVersion", model.Version()),
			)
			return pkgerrors.NewVersionConflictError(record.ID, model.Version(), r.storedVersion(ctx, record.ID))
		}
		r.logger.Error("Failed to save model to DynamoDB",
			zap.Error(err),
			zap.String("modelID", record.ID),
		)
		return pkgerrors.NewStorageError("dynamodb", "save", err)
	}

	r.logger.Info("Saved model to DynamoDB",
		zap.String("modelID", record.ID),
		zap.Int("version", record.Version),
		zap.Int("documentBytes", len(record.Document)),
	)
	return nil
}

// storedVersion is best effort and only used for error details
func (r *ModelRepository) storedVersion(ctx context.Context, id string) int {
	item, err := r.getItem(ctx, id)
	if err != nil || item == nil {
		return 0
	}
	return item.Version
}

func (r *ModelRepository) getItem(ctx context.Context, id string) (*modelItem, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            modelKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var item modelItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	return &item, nil
}

// GetByID loads a model
func (r *ModelRepository) GetByID(ctx context.Context, id valueobjects.ModelID) (*aggregates.Model, error) {
	item, err := r.getItem(ctx, id.String())
	if err != nil {
		return nil, pkgerrors.NewStorageError("dynamodb", "get", err)
	}
	if item == nil {
		return nil, pkgerrors.NewModelNotFoundError(id.String())
	}
	record := &abstractions.ModelRecord{Document: item.Document}
	return record.ToModel(r.codec)
}

// List queries the listing index, following pagination to the end
func (r *ModelRepository) List(ctx context.Context, opts ports.ListOptions) ([]ports.ModelSummary, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(listPartition))
	if opts.NamePrefix != "" {
		keyCond = keyCond.And(expression.Key("GSI1SK").BeginsWith(opts.NamePrefix))
	}
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}

	var (
		summaries []ports.ModelSummary
		startKey  map[string]types.AttributeValue
	)
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewStorageError("dynamodb", "list", err)
		}
		for _, raw := range out.Items {
			var item modelItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable model item", zap.Error(err))
				continue
			}
			updated, err := utils.ParseTimestamp(item.UpdatedAt)
			if err != nil {
				r.logger.Warn("Model item has an unreadable update time",
					zap.String("modelID", item.ModelID),
					zap.String("updatedAt", item.UpdatedAt),
					zap.Error(err))
			}
			summaries = append(summaries, ports.ModelSummary{
				ID:           item.ModelID,
				Name:         item.Name,
				Description:  item.Description,
				Version:      item.Version,
				Checksum:     item.Checksum,
				ContextCount: item.ContextCount,
				UpdatedAt:    updated,
			})
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return abstractions.ApplyListOptions(summaries, opts), nil
}

// Delete removes a model
func (r *ModelRepository) Delete(ctx context.Context, id valueobjects.ModelID) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 modelKey(id.String()),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionalCheckFailed) {
			return pkgerrors.NewModelNotFoundError(id.String())
		}
		return pkgerrors.NewStorageError("dynamodb", "delete", err)
	}
	return nil
}
