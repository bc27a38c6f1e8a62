package sku_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ellaliza/stockley/pkg/sku"
)

var skuFormat = regexp.MustCompile(`^[A-Z]{5}[0-9]{5}$`)

func TestGenerate_Formato(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := sku.Generate()
		assert.Regexp(t, skuFormat, code, "el SKU debe ser 5 letras mayúsculas + 5 dígitos")
	}
}
