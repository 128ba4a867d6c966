package library

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/buzzer/score"
)

// Dynamo keeps one item per melody: PK is the name, Notes a list of
// [frequency, offset, duration] number lists.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(endpoint, region, table string) (*Dynamo, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return &Dynamo{client: dynamodb.New(sess), table: table}, nil
}

func number(v uint64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatUint(v, 10))}
}

func parseNumber(v *dynamodb.AttributeValue, bits int) (uint64, error) {
	if v == nil || v.N == nil {
		return 0, fmt.Errorf("expected a number attribute")
	}
	return strconv.ParseUint(*v.N, 10, bits)
}

func encodeTable(t *score.Table) map[string]*dynamodb.AttributeValue {
	notes := make([]*dynamodb.AttributeValue, 0, len(t.Notes))
	for _, e := range t.Notes {
		notes = append(notes, &dynamodb.AttributeValue{L: []*dynamodb.AttributeValue{
			number(uint64(e.Frequency)),
			number(uint64(e.Offset)),
			number(uint64(e.Duration)),
		}})
	}
	return map[string]*dynamodb.AttributeValue{
		"PK":    {S: aws.String(t.Name)},
		"Notes": {L: notes},
	}
}

func decodeTable(item map[string]*dynamodb.AttributeValue) (*score.Table, error) {
	pk, ok := item["PK"]
	if !ok || pk.S == nil {
		return nil, fmt.Errorf("item has no PK")
	}
	t := &score.Table{Name: *pk.S, Notes: []score.Entry{}}
	notes, ok := item["Notes"]
	if !ok {
		return t, nil
	}
	for i, v := range notes.L {
		if len(v.L) != 3 {
			return nil, fmt.Errorf("%v: note %d has %d fields", t.Name, i, len(v.L))
		}
		f, err := parseNumber(v.L[0], 16)
		if err != nil {
			return nil, fmt.Errorf("%v: note %d frequency: %w", t.Name, i, err)
		}
		o, err := parseNumber(v.L[1], 32)
		if err != nil {
			return nil, fmt.Errorf("%v: note %d offset: %w", t.Name, i, err)
		}
		d, err := parseNumber(v.L[2], 32)
		if err != nil {
			return nil, fmt.Errorf("%v: note %d duration: %w", t.Name, i, err)
		}
		t.Notes = append(t.Notes, score.Entry{Frequency: uint16(f), Offset: uint32(o), Duration: uint32(d)})
	}
	return t, nil
}

func key(name string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{"PK": {S: aws.String(name)}}
}

func (d *Dynamo) List(ctx context.Context) ([]string, error) {
	var names []string
	input := &dynamodb.ScanInput{
		TableName:            aws.String(d.table),
		ProjectionExpression: aws.String("PK"),
	}
	err := d.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, last bool) bool {
		for _, item := range page.Items {
			if v, ok := item["PK"]; ok && v.S != nil {
				names = append(names, *v.S)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	return names, nil
}

func (d *Dynamo) Get(ctx context.Context, name string) (*score.Table, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       key(name),
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	return decodeTable(out.Item)
}

func (d *Dynamo) Put(ctx context.Context, t *score.Table) error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	_, err := d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      encodeTable(t),
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, name string) error {
	out, err := d.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(d.table),
		Key:          key(name),
		ReturnValues: aws.String(dynamodb.ReturnValueAllOld),
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		return ErrNotFound
	}
	return nil
}
