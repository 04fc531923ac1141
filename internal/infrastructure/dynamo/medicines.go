package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/JuanDluna/biosafe/internal/domain"
)

// MedicineRepo provides typed DynamoDB reads for the medicines table.
// The engine never writes medicine fields; the mobile client owns them.
type MedicineRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMedicineRepo(client *dynamodb.Client, tableName string) *MedicineRepo {
	return &MedicineRepo{client: client, tableName: tableName}
}

// ExpiringBetween scans for medicines whose expiration falls inside [from, to].
// Expiration is stored as an RFC 3339 UTC string, so string comparison orders
// chronologically. Paginates through the full table.
func (r *MedicineRepo) ExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Medicine, error) {
	fromAV, err := attributevalue.Marshal(from.UTC())
	if err != nil {
		return nil, fmt.Errorf("marshal window start: %w", err)
	}
	toAV, err := attributevalue.Marshal(to.UTC())
	if err != nil {
		return nil, fmt.Errorf("marshal window end: %w", err)
	}

	var medicines []domain.Medicine
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("expiration_date BETWEEN :from AND :to"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":from": fromAV,
				":to":   toAV,
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Medicine
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		medicines = append(medicines, page...)
		if out.LastEvaluatedKey == nil {
			return medicines, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
