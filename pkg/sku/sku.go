package sku

import (
	"fmt"
	"math/rand"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate produce un SKU aleatorio de cinco letras mayúsculas seguidas de
// cinco dígitos (ej. "KQZPT48213"). Se usa cuando un producto se crea sin SKU
// explícito; la unicidad final la garantiza el constraint en base de datos.
func Generate() string {
	buf := make([]byte, 5)
	for i := range buf {
		buf[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("%s%05d", buf, rand.Intn(100000))
}
