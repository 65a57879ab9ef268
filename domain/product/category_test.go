package product

import (
	"testing"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	for _, raw := range []string{"AAA", "", "side", "Main", "DRINKS", "DESSERT "} {
		_, err := ParseCategory(raw)
		require.Errorf(t, err, "ParseCategory(%q)", raw)
		assert.ErrorIs(t, err, failure.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "invalid category: "+raw)
	}
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{Name: "Batata", Price: 999, Category: CategorySide}
	require.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.Validate(), failure.ErrInvalidParameter)

	negative := valid
	negative.Price = -1
	assert.ErrorIs(t, negative.Validate(), failure.ErrInvalidParameter)

	unknown := valid
	unknown.Category = "AAA"
	assert.ErrorIs(t, unknown.Validate(), failure.ErrInvalidParameter)
}
