package library

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/buzzer/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

func (f *fakeDynamo) DeleteItemWithContext(_ aws.Context, in *dynamodb.DeleteItemInput, _ ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	name := *in.Key["PK"].S
	old := f.items[name]
	delete(f.items, name)
	return &dynamodb.DeleteItemOutput{Attributes: old}, nil
}

func (f *fakeDynamo) ScanPagesWithContext(_ aws.Context, _ *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, _ ...request.Option) error {
	var items []map[string]*dynamodb.AttributeValue
	for _, item := range f.items {
		items = append(items, map[string]*dynamodb.AttributeValue{"PK": item["PK"]})
	}
	fn(&dynamodb.ScanOutput{Items: items}, true)
	return nil
}

func TestDynamoRoundTrip(t *testing.T) {
	d := &Dynamo{client: newFakeDynamo(), table: "test"}
	ctx := context.Background()

	table := &score.Table{Name: "beep", Notes: []score.Entry{{Frequency: 440, Offset: 0, Duration: 200}, {Frequency: 880, Offset: 300, Duration: 100}}}
	require.NoError(t, d.Put(ctx, table))

	got, err := d.Get(ctx, "beep")
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(table, got)

	names, err := d.List(ctx)
	assert.NoError(err)
	assert.Equal([]string{"beep"}, names)

	assert.NoError(d.Delete(ctx, "beep"))
	_, err = d.Get(ctx, "beep")
	assert.ErrorIs(err, ErrNotFound)
	assert.ErrorIs(d.Delete(ctx, "beep"), ErrNotFound)
}

func TestDynamoRejectsBadName(t *testing.T) {
	d := &Dynamo{client: newFakeDynamo(), table: "test"}
	assert.Error(t, d.Put(context.Background(), &score.Table{Name: "no spaces"}))
}

func TestDecodeTable(t *testing.T) {
	good := encodeTable(&score.Table{Name: "x", Notes: []score.Entry{{Frequency: 20, Offset: 5, Duration: 6}}})
	table, err := decodeTable(good)
	assert.NoError(t, err)
	assert.Equal(t, []score.Entry{{Frequency: 20, Offset: 5, Duration: 6}}, table.Notes)

	empty, err := decodeTable(map[string]*dynamodb.AttributeValue{"PK": {S: aws.String("e")}})
	assert.NoError(t, err)
	assert.Empty(t, empty.Notes)

	cases := map[string]map[string]*dynamodb.AttributeValue{
		"no pk": {},
		"short note": {
			"PK":    {S: aws.String("x")},
			"Notes": {L: []*dynamodb.AttributeValue{{L: []*dynamodb.AttributeValue{number(1)}}}},
		},
		"frequency overflow": {
			"PK":    {S: aws.String("x")},
			"Notes": {L: []*dynamodb.AttributeValue{{L: []*dynamodb.AttributeValue{number(70000), number(0), number(0)}}}},
		},
	}
	for name, item := range cases {
		_, err := decodeTable(item)
		assert.Error(t, err, name)
	}
}
