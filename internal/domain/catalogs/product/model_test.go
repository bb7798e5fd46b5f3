package product

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Validate(t *testing.T) {
	valid := func() *Product {
		return NewProduct("P001", "Widget", "pcs", 5, time.Now())
	}

	assert.NoError(t, valid().Validate())

	p := valid()
	p.Code = strings.Repeat("c", MaxCodeLength+1)
	assert.Error(t, p.Validate())

	p = valid()
	p.Name = strings.Repeat("n", MaxNameLength+1)
	assert.Error(t, p.Validate())

	p = valid()
	p.Unit = strings.Repeat("u", MaxUnitLength+1)
	assert.Error(t, p.Validate())
}

func TestProduct_BelowMinimum(t *testing.T) {
	p := NewProduct("P001", "Widget", "pcs", 5, time.Now())
	assert.True(t, p.BelowMinimum())

	p.StockQty = 5
	assert.False(t, p.BelowMinimum())
}
