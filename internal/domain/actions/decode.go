package actions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/farmchain-go/internal/domain/catalog"
)

// Wire envelopes. Clients submit actions as a JSON array of tagged
// objects; the tag decides the payload shape. Chop names its tool in
// the "item" field for historical reasons.

type plantWire struct {
	Index     int       `json:"index"`
	Item      string    `json:"item"`
	CreatedAt time.Time `json:"createdAt"`
}

type harvestWire struct {
	Index     int       `json:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

type chopWire struct {
	Index     int       `json:"index"`
	Item      string    `json:"item"`
	CreatedAt time.Time `json:"createdAt"`
}

type craftWire struct {
	Item      string          `json:"item"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type sellWire struct {
	Item      string          `json:"item"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

type redeemWire struct {
	Item      string    `json:"item"`
	CreatedAt time.Time `json:"createdAt"`
}

// DecodeBatch parses a JSON action batch. An unknown tag is a decode
// error, not a runtime branch; the variant set is closed.
func DecodeBatch(data []byte) ([]Action, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding action batch: %w", err)
	}

	batch := make([]Action, 0, len(raw))
	for i, entry := range raw {
		action, err := decodeAction(entry)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		batch = append(batch, action)
	}
	return batch, nil
}

// Decode parses a single wire-form action.
func Decode(data []byte) (Action, error) {
	return decodeAction(data)
}

func decodeAction(data []byte) (Action, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decoding action tag: %w", err)
	}

	switch Kind(tag.Type) {
	case KindPlant:
		var w plantWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		return Plant{Index: w.Index, Item: catalog.ItemName(w.Item), CreatedAt: w.CreatedAt}, nil
	case KindHarvest:
		var w harvestWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		return Harvest{Index: w.Index, CreatedAt: w.CreatedAt}, nil
	case KindChop:
		var w chopWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		return Chop{Index: w.Index, Tool: catalog.ItemName(w.Item), CreatedAt: w.CreatedAt}, nil
	case KindCraft:
		var w craftWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		return Craft{Item: catalog.ItemName(w.Item), Amount: w.Amount, CreatedAt: w.CreatedAt}, nil
	case KindSell:
		var w sellWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		return Sell{Item: catalog.ItemName(w.Item), Amount: w.Amount, CreatedAt: w.CreatedAt}, nil
	case KindRedeem:
		var w redeemWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		return Redeem{Item: catalog.ItemName(w.Item), CreatedAt: w.CreatedAt}, nil
	default:
		return nil, &ErrUnknownAction{Tag: tag.Type}
	}
}

// Encode serializes an action back to its wire form. The audit log
// stores actions exactly as clients submit them.
func Encode(a Action) ([]byte, error) {
	switch v := a.(type) {
	case Plant:
		return json.Marshal(struct {
			Type string `json:"type"`
			plantWire
		}{string(KindPlant), plantWire{Index: v.Index, Item: string(v.Item), CreatedAt: v.CreatedAt.UTC()}})
	case Harvest:
		return json.Marshal(struct {
			Type string `json:"type"`
			harvestWire
		}{string(KindHarvest), harvestWire{Index: v.Index, CreatedAt: v.CreatedAt.UTC()}})
	case Chop:
		return json.Marshal(struct {
			Type string `json:"type"`
			chopWire
		}{string(KindChop), chopWire{Index: v.Index, Item: string(v.Tool), CreatedAt: v.CreatedAt.UTC()}})
	case Craft:
		return json.Marshal(struct {
			Type string `json:"type"`
			craftWire
		}{string(KindCraft), craftWire{Item: string(v.Item), Amount: v.Amount, CreatedAt: v.CreatedAt.UTC()}})
	case Sell:
		return json.Marshal(struct {
			Type string `json:"type"`
			sellWire
		}{string(KindSell), sellWire{Item: string(v.Item), Amount: v.Amount, CreatedAt: v.CreatedAt.UTC()}})
	case Redeem:
		return json.Marshal(struct {
			Type string `json:"type"`
			redeemWire
		}{string(KindRedeem), redeemWire{Item: string(v.Item), CreatedAt: v.CreatedAt.UTC()}})
	default:
		return nil, &ErrUnknownAction{Tag: string(a.Type())}
	}
}
