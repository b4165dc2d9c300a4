package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestProductInputPresence(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, in ProductInput)
	}{
		{
			name: "absent children stay nil",
			body: `{"name":"Red Mug"}`,
			check: func(t *testing.T, in ProductInput) {
				assert.Nil(t, in.Images)
				assert.Nil(t, in.Sizes)
				assert.False(t, in.SubCategoryID.Set)
			},
		},
		{
			name: "empty list is present",
			body: `{"images":[],"sizes":[]}`,
			check: func(t *testing.T, in ProductInput) {
				require.NotNil(t, in.Images)
				assert.Empty(t, *in.Images)
				require.NotNil(t, in.Sizes)
				assert.Empty(t, *in.Sizes)
			},
		},
		{
			name: "null subcategory is set but empty",
			body: `{"subcategory":null,"original_price":"12.50"}`,
			check: func(t *testing.T, in ProductInput) {
				assert.True(t, in.SubCategoryID.Set)
				assert.Nil(t, in.SubCategoryID.Value)
				require.NotNil(t, in.OriginalPrice.Value)
				assert.True(t, decimal.RequireFromString("12.5").Equal(*in.OriginalPrice.Value))
			},
		},
		{
			name: "read payload ids are accepted",
			body: `{"colors":[{"id":4,"name":"Red","image":""}],"styles":[{"name":"Handle","options":["Left","Right"]}]}`,
			check: func(t *testing.T, in ProductInput) {
				require.Len(t, *in.Colors, 1)
				assert.Equal(t, "Red", (*in.Colors)[0].Name)
				assert.Equal(t, []string{"Left", "Right"}, (*in.Styles)[0].Options)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in ProductInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			tt.check(t, in)
		})
	}
}

func TestProductInputRejectsUnknownChildShapes(t *testing.T) {
	bodies := []string{
		`{"images":[{"src":"https://cdn.example.com/a.jpg"}]}`,
		`{"colors":[{"name":"Red","hex":"#f00"}]}`,
		`{"styles":[{"name":"Handle","options":"Left"}]}`,
		`{"sizes":[{"name":"M"}]}`,
	}
	for _, body := range bodies {
		var in ProductInput
		assert.Error(t, json.Unmarshal([]byte(body), &in), body)
	}
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[int64] `json:"a"`
		B Optional[int64] `json:"b"`
	}{A: Some[int64](7), B: Null[int64]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7,"b":null}`, string(out))
}

func TestOrderStatusLifecycle(t *testing.T) {
	assert.True(t, StatusPending.FollowsLifecycle(StatusPaid))
	assert.True(t, StatusPaid.FollowsLifecycle(StatusShipped))
	assert.True(t, StatusShipped.FollowsLifecycle(StatusDelivered))
	assert.True(t, StatusShipped.FollowsLifecycle(StatusCancelled))
	assert.False(t, StatusDelivered.FollowsLifecycle(StatusPaid))
	assert.False(t, StatusDelivered.FollowsLifecycle(StatusCancelled))
	assert.False(t, StatusPending.FollowsLifecycle(StatusDelivered))

	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusShipped.Terminal())

	assert.True(t, OrderStatus("paid").Valid())
	assert.False(t, OrderStatus("refunded").Valid())
}

func TestPassword(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("correct horse"))
	assert.NotEqual(t, "correct horse", p.Hash)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte("correct horse")))
	assert.ErrorIs(t, bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte("wrong")), bcrypt.ErrMismatchedHashAndPassword)
}
