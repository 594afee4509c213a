package wfmarket

import (
	"github.com/wfm-tools/warmac/internal/models"
)

// ordersPayload mirrors the subset of the /items/{item}/orders?include=item
// response the program reads. Every required field is a pointer so that
// absence is detectable after decoding and reportable by path; the payload
// shape is an external contract and must be treated as untrusted.
type ordersPayload struct {
	Payload *struct {
		Orders *[]models.Order `json:"orders"`
	} `json:"payload"`
	Include *struct {
		Item *struct {
			ItemsInSet *[]setItem `json:"items_in_set"`
		} `json:"item"`
	} `json:"include"`
}

// setItem is one entry of items_in_set. Only the first entry is consulted;
// it describes the item the orders were fetched for.
type setItem struct {
	Tags       *[]string `json:"tags"`
	ModMaxRank *int      `json:"mod_max_rank"`
}

const (
	tagRelic  = "relic"
	tagMod    = "mod"
	tagArcane = "arcane_enhancement"
)

// extract classifies the item from its tags and pulls out the raw order
// list. A missing field at any level of the fixed navigation path is a
// SchemaError naming that path.
func extract(p *ordersPayload) (*models.ItemMetadata, []models.Order, error) {
	if p.Include == nil {
		return nil, nil, &SchemaError{Path: "include"}
	}
	if p.Include.Item == nil {
		return nil, nil, &SchemaError{Path: "include.item"}
	}
	if p.Include.Item.ItemsInSet == nil || len(*p.Include.Item.ItemsInSet) == 0 {
		return nil, nil, &SchemaError{Path: "include.item.items_in_set[0]"}
	}
	item := (*p.Include.Item.ItemsInSet)[0]
	if item.Tags == nil {
		return nil, nil, &SchemaError{Path: "include.item.items_in_set[0].tags"}
	}

	meta := &models.ItemMetadata{MaxRank: models.RankNotApplicable}
	for _, tag := range *item.Tags {
		switch tag {
		case tagRelic:
			meta.IsRelic = true
		case tagMod, tagArcane:
			meta.IsModOrArcane = true
		}
	}
	if meta.IsModOrArcane {
		if item.ModMaxRank == nil {
			return nil, nil, &SchemaError{Path: "include.item.items_in_set[0].mod_max_rank"}
		}
		meta.MaxRank = *item.ModMaxRank
	}

	if p.Payload == nil {
		return nil, nil, &SchemaError{Path: "payload"}
	}
	if p.Payload.Orders == nil {
		return nil, nil, &SchemaError{Path: "payload.orders"}
	}

	return meta, *p.Payload.Orders, nil
}
