package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "shopcart.catalog",
	"name": "CatalogEventV1",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "product", "type": {
			"type": "record",
			"name": "ProductV1",
			"fields": [
				{"name": "id", "type": "string"},
				{"name": "name", "type": "string"},
				{"name": "description", "type": "string"},
				{"name": "price", "type": "long"},
				{"name": "stock", "type": "int"},
				{"name": "discounts", "type": {
					"type": "array",
					"items": {
						"type": "record",
						"name": "DiscountV1",
						"fields": [
							{"name": "quantity", "type": "int"},
							{"name": "rate", "type": "double"}
						]
					}
				}}
			]
		}},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const CouponEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "shopcart.coupons",
	"name": "CouponEventV1",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "coupon", "type": {
			"type": "record",
			"name": "CouponV1",
			"fields": [
				{"name": "code", "type": "string"},
				{"name": "name", "type": "string"},
				{"name": "discount_type", "type": "string"},
				{"name": "discount_value", "type": "long"}
			]
		}},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	CatalogEventV1 struct {
		Kind       string    `avro:"kind"`
		Product    ProductV1 `avro:"product"`
		OccurredAt time.Time `avro:"occurred_at"`
	}

	ProductV1 struct {
		ID          string       `avro:"id"`
		Name        string       `avro:"name"`
		Description string       `avro:"description"`
		Price       int64        `avro:"price"`
		Stock       int          `avro:"stock"`
		Discounts   []DiscountV1 `avro:"discounts"`
	}

	DiscountV1 struct {
		Quantity int     `avro:"quantity"`
		Rate     float64 `avro:"rate"`
	}
)

type (
	CouponEventV1 struct {
		Kind       string    `avro:"kind"`
		Coupon     CouponV1  `avro:"coupon"`
		OccurredAt time.Time `avro:"occurred_at"`
	}

	CouponV1 struct {
		Code          string `avro:"code"`
		Name          string `avro:"name"`
		DiscountType  string `avro:"discount_type"`
		DiscountValue int64  `avro:"discount_value"`
	}
)

func CatalogEventV1Avro() avro.Schema {
	return avro.MustParse(CatalogEventSchemaTextV1)
}

func CouponEventV1Avro() avro.Schema {
	return avro.MustParse(CouponEventSchemaTextV1)
}

// CouponSchemaTextV1 is the coupon record alone. It is used for table values
// that are stored without the registry header.
const CouponSchemaTextV1 = `{
	"type": "record",
	"namespace": "shopcart.coupons",
	"name": "CouponV1",
	"fields": [
		{"name": "code", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "discount_type", "type": "string"},
		{"name": "discount_value", "type": "long"}
	]
}`

func CouponV1Avro() avro.Schema {
	return avro.MustParse(CouponSchemaTextV1)
}
