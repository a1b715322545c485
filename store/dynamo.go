package store

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/vexvoice/model"
	"github.com/pkg/errors"
)

type item struct {
	PK    string
	Title string
	Score string
}

type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoStore(endpoint string, region string, table string) (*DynamoStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return &DynamoStore{client: dynamodb.New(sess), table: table}, nil
}

// The summary is stored as a JSON string; nested maps with int keys do not
// marshal to attribute values.
func (d *DynamoStore) Put(ctx context.Context, id string, s model.ScoreSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	av, err := dynamodbattribute.MarshalMap(item{PK: id, Title: s.Title, Score: string(data)})
	if err != nil {
		return err
	}
	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      av,
	})
	if err != nil {
		return errors.Wrap(err, "Error from DynamoDB")
	}
	return nil
}

func (d *DynamoStore) Get(ctx context.Context, id string) (model.ScoreSummary, error) {
	var res model.ScoreSummary
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return res, errors.Wrap(err, "Error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return res, errors.Wrapf(ErrNotFound, "id %v", id)
	}

	var it item
	if err := dynamodbattribute.UnmarshalMap(out.Item, &it); err != nil {
		return res, err
	}
	err = json.Unmarshal([]byte(it.Score), &res)
	return res, err
}
