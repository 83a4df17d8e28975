package dynamodb

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sketchddd/application/ports"
	"sketchddd/infrastructure/persistence/codec"
	"sketchddd/infrastructure/persistence/repotest"
)

// fakeTable understands exactly the condition shapes ModelRepository sends
type fakeTable struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: make(map[string]map[string]types.AttributeValue)}
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func num(av types.AttributeValue) int {
	if n, ok := av.(*types.AttributeValueMemberN); ok {
		v, _ := strconv.Atoi(n.Value)
		return v
	}
	return -1
}

func (f *fakeTable) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pk := str(in.Item["PK"])
	existing, exists := f.items[pk]
	cond := *in.ConditionExpression
	switch {
	case strings.HasPrefix(cond, "attribute_not_exists"):
		if exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	default:
		var expected int
		for _, v := range in.ExpressionAttributeValues {
			expected = num(v)
		}
		if !exists || num(existing["Version"]) != expected {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.items[pk] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[str(in.Key["PK"])]}, nil
}

func (f *fakeTable) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := ""
	for _, v := range in.ExpressionAttributeValues {
		if s := str(v); s != listPartition {
			prefix = s
		}
	}
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items {
		if strings.HasPrefix(str(item["GSI1SK"]), prefix) {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (f *fakeTable) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pk := str(in.Key["PK"])
	if _, ok := f.items[pk]; !ok {
		return nil, &types.ConditionalCheckFailedException{}
	}
	delete(f.items, pk)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestModelRepositoryContract(t *testing.T) {
	repotest.RunContract(t, func(t *testing.T) ports.ModelRepository {
		return NewModelRepository(newFakeTable(), "models", codec.NewCodec(), zap.NewNop())
	})
}

func TestList_LogsUnreadableUpdateTime(t *testing.T) {
	table := newFakeTable()
	table.items["MODEL#m-1"] = map[string]types.AttributeValue{
		"PK":         &types.AttributeValueMemberS{Value: "MODEL#m-1"},
		"SK":         &types.AttributeValueMemberS{Value: metadataSK},
		"GSI1PK":     &types.AttributeValueMemberS{Value: listPartition},
		"GSI1SK":     &types.AttributeValueMemberS{Value: "Broken"},
		"EntityType": &types.AttributeValueMemberS{Value: entityTypeModel},
		"ModelID":    &types.AttributeValueMemberS{Value: "m-1"},
		"Name":       &types.AttributeValueMemberS{Value: "Broken"},
		"Version":    &types.AttributeValueMemberN{Value: "2"},
		"UpdatedAt":  &types.AttributeValueMemberS{Value: "last tuesday"},
	}
	core, logs := observer.New(zapcore.WarnLevel)
	repo := NewModelRepository(table, "models", codec.NewCodec(), zap.New(core))

	summaries, err := repo.List(context.Background(), ports.ListOptions{})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Broken", summaries[0].Name)
	assert.True(t, summaries[0].UpdatedAt.IsZero())

	entries := logs.FilterMessage("Model item has an unreadable update time").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "m-1", entries[0].ContextMap()["modelID"])
}
