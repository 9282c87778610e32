package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

// MemoryGateway is an in-memory Gateway used by tests. Items are stored in
// the same attribute-value representation the DynamoDB gateway produces, so
// marshalling behavior is shared between the two.
type MemoryGateway struct {
	mu    sync.RWMutex
	items map[Key]map[string]types.AttributeValue
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{items: make(map[Key]map[string]types.AttributeValue)}
}

func itemKey(attrs map[string]types.AttributeValue) (Key, error) {
	pk, ok := attrs["PK"].(*types.AttributeValueMemberS)
	if !ok {
		return Key{}, fmt.Errorf("item has no string PK attribute")
	}
	sk, ok := attrs["SK"].(*types.AttributeValueMemberS)
	if !ok {
		return Key{}, fmt.Errorf("item has no string SK attribute")
	}
	return Key{PK: pk.Value, SK: sk.Value}, nil
}

func (g *MemoryGateway) Get(ctx context.Context, key Key, out any) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	attrs, ok := g.items[key]
	if !ok {
		return common.ErrorNotFound
	}
	return attributevalue.UnmarshalMap(attrs, out)
}

func (g *MemoryGateway) Put(ctx context.Context, item any) error {
	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	key, err := itemKey(attrs)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.items[key] = attrs
	return nil
}

func (g *MemoryGateway) Update(ctx context.Context, key Key, changes []update.Change) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	attrs, ok := g.items[key]
	if !ok {
		return common.ErrorNotFound
	}

	for _, c := range changes {
		av, err := attributevalue.Marshal(c.Value)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		attrs[c.Field] = av
	}
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, key Key, out any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	attrs, ok := g.items[key]
	if !ok {
		return common.ErrorNotFound
	}
	delete(g.items, key)

	if out != nil {
		return attributevalue.UnmarshalMap(attrs, out)
	}
	return nil
}

func (g *MemoryGateway) QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var matched []map[string]types.AttributeValue
	for key, attrs := range g.items {
		if key.PK == pk && strings.HasPrefix(key.SK, skPrefix) {
			matched = append(matched, attrs)
		}
	}

	// DynamoDB returns query results ordered by sort key.
	sort.Slice(matched, func(i, j int) bool {
		ki, _ := itemKey(matched[i])
		kj, _ := itemKey(matched[j])
		return ki.SK < kj.SK
	})

	return attributevalue.UnmarshalListOfMaps(matched, out)
}

func (g *MemoryGateway) ScanEquals(ctx context.Context, match map[string]any, out any) error {
	want := make(map[string]types.AttributeValue, len(match))
	for name, value := range match {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		want[name] = av
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var matched []map[string]types.AttributeValue
	for _, attrs := range g.items {
		ok := true
		for name, av := range want {
			got, present := attrs[name]
			if !present || !reflect.DeepEqual(got, av) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, attrs)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		ki, _ := itemKey(matched[i])
		kj, _ := itemKey(matched[j])
		if ki.PK != kj.PK {
			return ki.PK < kj.PK
		}
		return ki.SK < kj.SK
	})

	return attributevalue.UnmarshalListOfMaps(matched, out)
}

// Len reports the number of stored items.
func (g *MemoryGateway) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}
