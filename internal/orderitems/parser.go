// Package orderitems normalizes the heterogeneous JSON shapes historically
// stored in the orders.items column into a uniform item list. Decoders are
// attempted in priority order and each reports success or failure instead of
// panicking; a payload no decoder understands yields an empty list.
package orderitems

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Item is the normalized form of one order line
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// Parser decodes raw item payloads
type Parser struct {
	log *zap.Logger
}

// New creates a parser. A nil logger is replaced with a no-op logger.
func New(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// Parse normalizes a raw items payload. It never returns an error or panics;
// unusable input degrades to an empty list so the order still renders.
func (p *Parser) Parse(raw json.RawMessage) (items []Item) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("panic while parsing order items", zap.Any("recovered", r))
			items = []Item{}
		}
	}()

	if len(raw) == 0 {
		return []Item{}
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		p.log.Warn("order items column is not valid JSON", zap.Error(err))
		return []Item{}
	}

	return p.parseValue(value, true)
}

// parseValue dispatches on the runtime shape of the decoded payload.
// allowRecurse guards the string case so a doubly-encoded payload is only
// unwrapped once.
func (p *Parser) parseValue(value interface{}, allowRecurse bool) []Item {
	switch v := value.(type) {
	case map[string]interface{}:
		if original, ok := v["original"].([]interface{}); ok {
			return p.decodeEntryList(original)
		}
		if formatted, ok := v["formatted"].(map[string]interface{}); ok {
			return p.decodeQuantityMap(formatted, false)
		}
		return p.decodeQuantityMap(v, true)
	case []interface{}:
		return p.decodeEntryList(v)
	case string:
		if !allowRecurse {
			return []Item{}
		}
		var inner interface{}
		if err := json.Unmarshal([]byte(v), &inner); err != nil {
			p.log.Warn("order items string is not valid JSON", zap.Error(err))
			return []Item{}
		}
		return p.parseValue(inner, false)
	default:
		return []Item{}
	}
}

// decodeEntryList maps an array of {name, price, quantity} objects. Entries
// without a usable name are skipped.
func (p *Parser) decodeEntryList(entries []interface{}) []Item {
	items := []Item{}
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		name, _ := m["name"].(string)
		if name == "" {
			continue
		}

		items = append(items, Item{
			Name:     name,
			Quantity: quantityOf(m["quantity"]),
			Price:    priceOf(m["price"]),
		})
	}
	return items
}

// decodeQuantityMap maps a plain name -> value object. When heuristic is
// true the string values get the legacy quantity heuristics; the .formatted
// sub-shape only ever carries quantities.
func (p *Parser) decodeQuantityMap(m map[string]interface{}, heuristic bool) []Item {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == "" || strings.HasPrefix(k, "_") || k == "original" || k == "formatted" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := []Item{}
	for _, name := range keys {
		item := Item{Name: name, Quantity: 1, Price: ""}

		switch v := m[name].(type) {
		case float64:
			item.Quantity = clampQuantity(int(v))
		case string:
			if heuristic {
				item = decodeDescription(name, v)
			} else if q, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				item.Quantity = clampQuantity(q)
			}
		}

		items = append(items, item)
	}
	return items
}

// decodeDescription applies the legacy free-text quantity heuristics used by
// the oldest rows, e.g. "3 slices x 1" or "2 large".
func decodeDescription(name, desc string) Item {
	item := Item{Name: name, Quantity: 1, Price: ""}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return item
	}

	// plain numeric string is just a quantity
	if q, err := strconv.Atoi(desc); err == nil {
		item.Quantity = clampQuantity(q)
		return item
	}

	// "<description> x <quantity>": the trailing token is the quantity and the
	// rest of the description is discarded
	if strings.Contains(desc, " x ") {
		parts := strings.Split(desc, " x ")
		if q, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			item.Quantity = clampQuantity(q)
		}
		return item
	}

	// "<quantity> <description>": leading integer is the quantity and the full
	// description is kept on the name
	if fields := strings.Fields(desc); len(fields) > 1 {
		if q, err := strconv.Atoi(fields[0]); err == nil {
			item.Quantity = clampQuantity(q)
			item.Name = name + " (" + desc + ")"
			return item
		}
	}

	item.Name = name + " (" + desc + ")"
	return item
}

func quantityOf(v interface{}) int {
	switch q := v.(type) {
	case float64:
		return clampQuantity(int(q))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(q)); err == nil {
			return clampQuantity(n)
		}
	}
	return 1
}

func priceOf(v interface{}) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	}
	return ""
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
