package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/server/config"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

// DynamoAPI is the subset of the DynamoDB client used by the gateway.
// Extracted so tests can substitute a fake.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoGateway implements Gateway against a single DynamoDB table.
type DynamoGateway struct {
	client DynamoAPI
	table  string
}

// NewDynamoGateway builds a gateway from server config. A non-empty
// AWSBaseEndpoint redirects the client to a local stack (DynamoDB Local).
func NewDynamoGateway(ctx context.Context, cfg *config.Config) (*DynamoGateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSBaseEndpoint)
		}
	})

	return &DynamoGateway{client: client, table: cfg.TableName}, nil
}

// NewDynamoGatewayWithClient wires an existing client, used by tests.
func NewDynamoGatewayWithClient(client DynamoAPI, table string) *DynamoGateway {
	return &DynamoGateway{client: client, table: table}
}

func keyAttributes(key Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: key.PK},
		"SK": &types.AttributeValueMemberS{Value: key.SK},
	}
}

func (g *DynamoGateway) Get(ctx context.Context, key Key, out any) error {
	res, err := g.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.table),
		Key:       keyAttributes(key),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if len(res.Item) == 0 {
		return common.ErrorNotFound
	}

	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

func (g *DynamoGateway) Put(ctx context.Context, item any) error {
	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(g.table),
		Item:      attrs,
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (g *DynamoGateway) Update(ctx context.Context, key Key, changes []update.Change) error {
	upd := expression.UpdateBuilder{}
	for _, c := range changes {
		upd = upd.Set(expression.Name(c.Field), expression.Value(c.Value))
	}

	// attribute_exists turns an update of a missing item into a conditional
	// failure instead of silently creating it.
	expr, err := expression.NewBuilder().
		WithUpdate(upd).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return fmt.Errorf("expression error: %w", err)
	}

	_, err = g.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(g.table),
		Key:                       keyAttributes(key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (g *DynamoGateway) Delete(ctx context.Context, key Key, out any) error {
	res, err := g.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(g.table),
		Key:          keyAttributes(key),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	// Empty Attributes means the item did not exist.
	if len(res.Attributes) == 0 {
		return common.ErrorNotFound
	}

	if out != nil {
		if err := attributevalue.UnmarshalMap(res.Attributes, out); err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}
	}
	return nil
}

func (g *DynamoGateway) QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error {
	keyCond := expression.Key("PK").Equal(expression.Value(pk)).
		And(expression.Key("SK").BeginsWith(skPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return fmt.Errorf("expression error: %w", err)
	}

	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		res, err := g.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(g.table),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		items = append(items, res.Items...)
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		startKey = res.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

func (g *DynamoGateway) ScanEquals(ctx context.Context, match map[string]any, out any) error {
	var filter expression.ConditionBuilder
	first := true
	for name, value := range match {
		cond := expression.Name(name).Equal(expression.Value(value))
		if first {
			filter = cond
			first = false
		} else {
			filter = filter.And(cond)
		}
	}

	input := &dynamodb.ScanInput{TableName: aws.String(g.table)}
	if !first {
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return fmt.Errorf("expression error: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		input.ExclusiveStartKey = startKey
		res, err := g.client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		items = append(items, res.Items...)
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		startKey = res.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}
