package query

import (
	"encoding/base64"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cursor pins a position in a sorted sequence. The sort key value of the
// last item seen is carried inside the token, so the cursor stays valid even
// after that item is deleted; no lookup of the anchor document is ever needed.
type Cursor struct {
	SortBy    string        `bson:"f"`
	Direction SortDirection `bson:"d"`
	SortValue interface{}   `bson:"v"`
	LastID    bson.ObjectID `bson:"id"`
}

// Encode serializes the cursor to an opaque URL-safe token.
func (c *Cursor) Encode() string {
	raw, err := bson.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque token produced by Encode.
func DecodeCursor(token string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor token: %w", err)
	}
	var c Cursor
	if err := bson.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("malformed cursor token: %w", err)
	}
	return &c, nil
}

// Validate rejects a cursor minted for a different ordering than the one
// being requested; mixing them would silently skip or repeat rows.
func (c *Cursor) Validate(sortBy string, direction SortDirection) error {
	if c.SortBy != sortBy {
		return fmt.Errorf("cursor was issued for sort field %q, request asks for %q", c.SortBy, sortBy)
	}
	if c.Direction != direction {
		return fmt.Errorf("cursor was issued for the opposite sort direction")
	}
	return nil
}

// Filter builds the strictly-after predicate for the composite (sortKey, _id)
// ordering. The comparison is lexicographic: first on the sort key, then on
// _id for rows that tie on the sort key.
func (c *Cursor) Filter() bson.D {
	op := c.Direction.Operator()
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: c.SortBy, Value: bson.D{{Key: op, Value: c.SortValue}}}},
		bson.D{
			{Key: c.SortBy, Value: c.SortValue},
			{Key: "_id", Value: bson.D{{Key: op, Value: c.LastID}}},
		},
	}}}
}
