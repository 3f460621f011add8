package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
)

func TestToGroupTable(t *testing.T) {
	assert.Equal(t, "coupon-table-table", toGroupTable("coupon-table"))
}

func TestResponsesErr(t *testing.T) {
	t.Run("AlreadyExistsIsFine", func(t *testing.T) {
		responses := kadm.CreateTopicResponses{
			"catalog": {Topic: "catalog"},
			"coupons": {Topic: "coupons", Err: kerr.TopicAlreadyExists},
		}
		assert.NoError(t, responsesErr(responses))
	})

	t.Run("Failure", func(t *testing.T) {
		responses := kadm.CreateTopicResponses{
			"catalog": {Topic: "catalog", Err: kerr.InvalidReplicationFactor},
		}
		err := responsesErr(responses)
		assert.ErrorIs(t, err, kerr.InvalidReplicationFactor)
	})
}
